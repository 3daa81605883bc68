package kubeconfig

import (
	"reflect"
	"testing"
)

func TestOrphans(t *testing.T) {
	cfg, err := Parse([]byte(`apiVersion: v1
kind: Config
clusters:
- cluster: {server: https://a}
  name: a
- cluster: {server: https://b}
  name: b
- cluster: {server: https://lonely}
  name: lonely
users:
- name: ua
  user: {token: t}
- name: unused
  user: {token: t}
contexts:
- context: {cluster: a, user: ua}
  name: c1
- context: {cluster: b, user: ua}
  name: c2
`))
	if err != nil {
		t.Fatal(err)
	}

	clusters, users := Orphans(cfg)
	if !reflect.DeepEqual(clusters, []string{"lonely"}) {
		t.Errorf("orphan clusters = %v, want [lonely]", clusters)
	}
	if !reflect.DeepEqual(users, []string{"unused"}) {
		t.Errorf("orphan users = %v, want [unused]", users)
	}
}

func TestOrphans_NoContexts(t *testing.T) {
	cfg, err := Parse([]byte(`apiVersion: v1
kind: Config
clusters:
- cluster: {server: https://a}
  name: a
users:
- name: ua
  user: {token: t}
`))
	if err != nil {
		t.Fatal(err)
	}

	clusters, users := Orphans(cfg)
	if len(clusters) != 1 || len(users) != 1 {
		t.Errorf("Orphans() = %v, %v; want everything orphaned", clusters, users)
	}
}

func TestOrphans_Empty(t *testing.T) {
	clusters, users := Orphans(New())
	if clusters != nil || users != nil {
		t.Errorf("Orphans(empty) = %v, %v; want nil, nil", clusters, users)
	}
}
