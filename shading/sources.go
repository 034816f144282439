package shading

import (
	"fmt"
	"strings"
)

const spriteVertexSource = `#version 330 core
layout(location = 0) in vec2 aPosition;
layout(location = 1) in vec2 aVelocity;

out float velocityMagnitude;

uniform mat4 uProjection;
uniform float uParticleSize;

void main() {
    gl_Position = uProjection * vec4(aPosition, 0.0, 1.0);
    velocityMagnitude = length(aVelocity);
    gl_PointSize = uParticleSize;
}
`

const spriteFragmentSource = `#version 330 core
in float velocityMagnitude;
out vec4 FragColor;

uniform float uMaxVelocity;
uniform vec3 uSlowColor;
uniform vec3 uFastColor;
uniform float uAlpha;

void main() {
    // gl_PointCoord [0,1] -> [-1,1]
    vec2 circlePos = 2.0 * gl_PointCoord - 1.0;
    if (dot(circlePos, circlePos) > 1.0) {
        discard;
    }

    float velocityNorm = clamp(velocityMagnitude / uMaxVelocity, 0.0, 1.0);
    FragColor = vec4(mix(uSlowColor, uFastColor, velocityNorm), uAlpha);
}
`

const compositeVertexSource = `#version 330 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTexCoord;

out vec2 TexCoord;

void main() {
    gl_Position = vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
}
`

// compositeFragmentSource renders the blur shader with the kernel weights
// baked in, so the GLSL and the CPU blur share one table.
func compositeFragmentSource(k Kernel) string {
	weights := make([]string, len(k.Side))
	for i, w := range k.Side {
		weights[i] = glslFloat(w)
	}

	return fmt.Sprintf(`#version 330 core
uniform sampler2D image;
uniform float uBlur;
out vec4 FragColor;

in vec2 TexCoord;

const int TAPS = %d;
const float centerWeight = %s;
const float sideWeight[TAPS] = float[](%s);
const float axisShare = %s;

void main() {
    if (uBlur < 0.5) {
        FragColor = clamp(texture(image, TexCoord), 0.0, 1.0);
        return;
    }

    vec2 texel = 1.0 / vec2(textureSize(image, 0));
    vec4 result = texture(image, TexCoord) * centerWeight;
    for (int i = 0; i < TAPS; ++i) {
        float d = float(i + 1);
        float w = sideWeight[i] * axisShare;
        result += texture(image, TexCoord + vec2(texel.x * d, 0.0)) * w;
        result += texture(image, TexCoord - vec2(texel.x * d, 0.0)) * w;
        result += texture(image, TexCoord + vec2(0.0, texel.y * d)) * w;
        result += texture(image, TexCoord - vec2(0.0, texel.y * d)) * w;
    }

    FragColor = clamp(result, 0.0, 1.0);
}
`, len(k.Side), glslFloat(k.Center), strings.Join(weights, ", "), glslFloat(k.AxisShare))
}

// glslFloat formats v so GLSL parses it as a float literal.
func glslFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
