package render

// The pipeline is three fragment passes over a fullscreen quad. GLSL 330
// matches the 3.3 core context raylib creates.

const quadVertexShader = `#version 330 core
layout(location = 0) in vec2 aPosition;
void main() {
    gl_Position = vec4(aPosition, 0.0, 1.0);
}
` + "\x00"

// clearFragmentShader zeroes the potential texture. Resetting by drawing
// keeps the texture resident on the GPU instead of re-uploading pixels.
const clearFragmentShader = `#version 330 core
out vec4 outValue;
void main() {
    outValue = vec4(0.0);
}
` + "\x00"

// computeFragmentShader accumulates one diff. Each fragment maps its texel
// back to model space through the inverse view-projection matrix, samples
// its own previous value, and adds the potential change of the diff's
// endpoints. The distance is deliberately unguarded: a texel landing exactly
// on a charge produces Inf, which the display ramp clamps.
const computeFragmentShader = `#version 330 core
uniform sampler2D uPrevious;
uniform mat3 uInverseMatrix;
uniform vec2 uCanvasSize;
uniform vec2 uTextureSize;
uniform float uCharge;
uniform vec2 uOldPosition;
uniform vec2 uNewPosition;
uniform float uHasOld;
uniform float uHasNew;

out vec4 outValue;

const float kCoulomb = 9.0;

void main() {
    vec2 ndc = gl_FragCoord.xy / uCanvasSize * 2.0 - 1.0;
    vec3 h = uInverseMatrix * vec3(ndc, 1.0);
    vec2 model = h.xy / h.z;

    float previous = texture(uPrevious, gl_FragCoord.xy / uTextureSize).r;

    float change = 0.0;
    if (uHasNew > 0.5) {
        change += uCharge * kCoulomb / distance(model, uNewPosition);
    }
    if (uHasOld > 0.5) {
        change -= uCharge * kCoulomb / distance(model, uOldPosition);
    }

    outValue = vec4(previous + change, 0.0, 0.0, 1.0);
}
` + "\x00"

// displayFragmentShader renders the accumulated potential through the color
// ramp into the RGBA display target.
const displayFragmentShader = `#version 330 core
uniform sampler2D uField;
uniform vec2 uTextureSize;
uniform vec3 uZeroColor;
uniform vec3 uPositiveColor;
uniform vec3 uNegativeColor;
uniform float uPositiveScale;
uniform float uNegativeScale;

out vec4 outColor;

void main() {
    float value = texture(uField, gl_FragCoord.xy / uTextureSize).r;
    vec3 color;
    if (value > 0.0) {
        color = mix(uZeroColor, uPositiveColor, clamp(value / uPositiveScale, 0.0, 1.0));
    } else {
        color = mix(uZeroColor, uNegativeColor, clamp(-value / uNegativeScale, 0.0, 1.0));
    }
    outColor = vec4(color, 1.0);
}
` + "\x00"
