package kubeconfig

import (
	"testing"

	"github.com/thoreinstein/khelp/internal/errors"
)

func TestValidate_OK(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_DanglingCurrentContext(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	cfg.CurrentContext = "gone"

	err = cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil, want ErrValidation")
	}
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("error %v is not marked ErrValidation", err)
	}
}

func TestValidate_UnsetCurrentContext(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	cfg.CurrentContext = ""

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with unset current-context error = %v, want nil", err)
	}
}

func TestDanglingRefs_ToleratedButReported(t *testing.T) {
	cfg, err := Parse([]byte(`apiVersion: v1
kind: Config
contexts:
- context: {cluster: ghost, user: phantom}
  name: haunted
`))
	if err != nil {
		t.Fatalf("dangling references should parse: %v", err)
	}

	refs := cfg.DanglingRefs()
	if len(refs) != 2 {
		t.Fatalf("DanglingRefs() = %d entries, want 2: %v", len(refs), refs)
	}
	if refs[0].Context != "haunted" || refs[0].Kind != "cluster" || refs[0].Name != "ghost" {
		t.Errorf("refs[0] = %+v", refs[0])
	}
	if refs[1].Kind != "user" || refs[1].Name != "phantom" {
		t.Errorf("refs[1] = %+v", refs[1])
	}
}
