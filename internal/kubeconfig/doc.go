// Package kubeconfig implements the kubeconfig document model.
//
// A [Config] holds the three named collections (clusters, users,
// contexts) plus the current-context pointer. Known fields are typed.
// Everything else (user auth payloads, preferences, and any
// unrecognized key at any level) is carried as raw [yaml.Node] values,
// so a load, mutate, persist cycle reproduces fields the tool does not
// understand.
//
// Context references to clusters and users are weak: they are names,
// not pointers, and may dangle. Parsing tolerates dangling references;
// operations that must resolve them (export, edit) fail explicitly.
package kubeconfig
