// Package paths resolves the locations khelp reads and writes.
//
// The managed kubeconfig lives at ~/.kube/config by default and can be
// pointed elsewhere with the KUBECONFIG environment variable. khelp's
// own settings file lives under the XDG config home.
package paths
