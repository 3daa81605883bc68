package kubeconfig

import (
	"strings"
	"testing"

	"github.com/thoreinstein/khelp/internal/errors"
)

const sampleConfig = `apiVersion: v1
kind: Config
preferences: {}
clusters:
- cluster:
    certificate-authority-data: LS0tLS1CRUdJTi...
    server: https://cluster1.example.com
  name: cluster1
- cluster:
    certificate-authority: /etc/ca.crt
    server: https://cluster2.example.com
    insecure-skip-tls-verify: true
  name: cluster2
users:
- name: user1
  user:
    client-certificate-data: LS0tLS1CRUdJTi...
    client-key-data: LS0tLS1CRUdJTi...
- name: user2
  user:
    token: eyJhbGciOiJSUzI1NiJ9...
contexts:
- context:
    cluster: cluster1
    user: user1
    namespace: default
  name: context1
- context:
    cluster: cluster2
    user: user2
  name: context2
current-context: context1
`

func TestParse_Sample(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.APIVersion != "v1" {
		t.Errorf("APIVersion = %q, want %q", cfg.APIVersion, "v1")
	}
	if cfg.Kind != "Config" {
		t.Errorf("Kind = %q, want %q", cfg.Kind, "Config")
	}
	if len(cfg.Clusters) != 2 || len(cfg.Users) != 2 || len(cfg.Contexts) != 2 {
		t.Fatalf("collection sizes = %d/%d/%d, want 2/2/2",
			len(cfg.Clusters), len(cfg.Users), len(cfg.Contexts))
	}
	if cfg.CurrentContext != "context1" {
		t.Errorf("CurrentContext = %q, want %q", cfg.CurrentContext, "context1")
	}

	c2 := cfg.Cluster("cluster2")
	if c2 == nil {
		t.Fatal("Cluster(cluster2) = nil")
	}
	if c2.Cluster.Server != "https://cluster2.example.com" {
		t.Errorf("server = %q", c2.Cluster.Server)
	}
	if c2.Cluster.CertificateAuthority != "/etc/ca.crt" {
		t.Errorf("certificate-authority = %q", c2.Cluster.CertificateAuthority)
	}
	if c2.Cluster.InsecureSkipTLSVerify == nil || !*c2.Cluster.InsecureSkipTLSVerify {
		t.Error("insecure-skip-tls-verify not parsed")
	}

	ctx1 := cfg.Context("context1")
	if ctx1 == nil {
		t.Fatal("Context(context1) = nil")
	}
	if ctx1.Context.Cluster != "cluster1" || ctx1.Context.User != "user1" {
		t.Errorf("context1 refs = %s/%s", ctx1.Context.Cluster, ctx1.Context.User)
	}
	if ctx1.Context.Namespace != "default" {
		t.Errorf("namespace = %q, want default", ctx1.Context.Namespace)
	}

	ctx2 := cfg.Context("context2")
	if ctx2.Context.Namespace != "" {
		t.Errorf("context2 namespace = %q, want empty", ctx2.Context.Namespace)
	}
}

func TestParse_Blank(t *testing.T) {
	for _, input := range []string{"", "   \n\t\n"} {
		cfg, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", input, err)
		}
		if cfg.APIVersion != DefaultAPIVersion || cfg.Kind != DefaultKind {
			t.Errorf("defaults = %s/%s, want %s/%s",
				cfg.APIVersion, cfg.Kind, DefaultAPIVersion, DefaultKind)
		}
		if len(cfg.Contexts) != 0 || cfg.CurrentContext != "" {
			t.Error("blank input should yield an empty document")
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"broken yaml", "invalid: yaml: content: ["},
		{"missing apiVersion", "kind: Config\n"},
		{"missing kind", "apiVersion: v1\n"},
		{"cluster without name", "apiVersion: v1\nkind: Config\nclusters:\n- cluster:\n    server: https://x\n"},
		{"cluster without server", "apiVersion: v1\nkind: Config\nclusters:\n- name: a\n  cluster: {}\n"},
		{"context without cluster ref", "apiVersion: v1\nkind: Config\ncontexts:\n- name: c\n  context:\n    user: u\n"},
		{"duplicate context names", "apiVersion: v1\nkind: Config\ncontexts:\n- name: c\n  context: {cluster: a, user: u}\n- name: c\n  context: {cluster: b, user: v}\n"},
		{"scalar where sequence expected", "apiVersion: v1\nkind: Config\nclusters: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil, want ErrParse")
			}
			if !errors.Is(err, errors.ErrParse) {
				t.Errorf("error %v is not marked ErrParse", err)
			}
		})
	}
}

func TestRoundTrip_PreservesUnknownFields(t *testing.T) {
	input := `apiVersion: v1
kind: Config
preferences:
  colors: true
extensions:
- name: exotic
  extension:
    nested:
      deeply: [1, 2, 3]
clusters:
- cluster:
    server: https://cluster1.example.com
    proxy-url: socks5://localhost:1080
  name: cluster1
  vendor-marker: acme
users:
- name: user1
  user:
    exec:
      apiVersion: client.authentication.k8s.io/v1
      command: kubelogin
      args: [get-token]
contexts:
- context:
    cluster: cluster1
    user: user1
    cluster-info: opaque-blob
  name: context1
current-context: context1
`

	cfg, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	out, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, want := range []string{
		"extensions:",
		"name: exotic",
		"deeply:",
		"proxy-url: socks5://localhost:1080",
		"vendor-marker: acme",
		"command: kubelogin",
		"cluster-info: opaque-blob",
		"colors: true",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("round-trip lost %q:\n%s", want, out)
		}
	}

	// A second cycle must be stable.
	cfg2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}
	out2, err := Marshal(cfg2)
	if err != nil {
		t.Fatalf("re-Marshal() error = %v", err)
	}
	if string(out) != string(out2) {
		t.Errorf("second round-trip differs:\n--- first:\n%s\n--- second:\n%s", out, out2)
	}
}

func TestRoundTrip_SemanticEquality(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	out, err := Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse() error = %v", err)
	}

	out2, err := Marshal(cfg2)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != string(out2) {
		t.Errorf("serializations differ:\n%s\n---\n%s", out, out2)
	}
}

func TestMarshal_EmptyDocument(t *testing.T) {
	out, err := Marshal(New())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	s := string(out)
	for _, want := range []string{"apiVersion: v1", "kind: Config", "clusters: []", "users: []", "contexts: []"} {
		if !strings.Contains(s, want) {
			t.Errorf("empty document missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "current-context") {
		t.Errorf("empty document should omit current-context:\n%s", s)
	}
}

func TestDeepCopy_Independent(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	cp := cfg.DeepCopy()
	cp.CurrentContext = "context2"
	cp.Contexts[0].Name = "renamed"
	cp.Clusters[0].Cluster.Server = "https://other.example.com"

	if cfg.CurrentContext != "context1" {
		t.Error("DeepCopy shares CurrentContext")
	}
	if cfg.Contexts[0].Name != "context1" {
		t.Error("DeepCopy shares context entries")
	}
	if cfg.Clusters[0].Cluster.Server != "https://cluster1.example.com" {
		t.Error("DeepCopy shares cluster entries")
	}
}

func TestLookups_Missing(t *testing.T) {
	cfg := New()
	if cfg.Cluster("nope") != nil || cfg.User("nope") != nil || cfg.Context("nope") != nil {
		t.Error("lookups on empty document should return nil")
	}
}
