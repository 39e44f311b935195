package render

import (
	"errors"
	"testing"
)

func TestPassError_Unwrap(t *testing.T) {
	err := &PassError{Pass: "compute pass", Wrapped: ErrShaderCompile}
	if !errors.Is(err, ErrShaderCompile) {
		t.Error("PassError should unwrap to its sentinel")
	}
	if errors.Is(err, ErrProgramLink) {
		t.Error("PassError should not match unrelated sentinels")
	}
}

func TestPassError_Message(t *testing.T) {
	err := &PassError{Pass: "clear pass", Wrapped: ErrProgramLink}
	want := "clear pass: render: program link failed"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	err = &PassError{Pass: "probe", Detail: "no context", Wrapped: ErrFloatTextureUnsupported}
	if got := err.Error(); got != "probe: render: float texture rendering not supported by this driver: no context" {
		t.Errorf("unexpected message %q", got)
	}
}
