package kubeconfig

// Orphans returns the cluster and user names not referenced by any
// context, in collection order. Pure: the document is not modified.
func Orphans(cfg *Config) (clusters, users []string) {
	refClusters := make(map[string]struct{}, len(cfg.Contexts))
	refUsers := make(map[string]struct{}, len(cfg.Contexts))
	for i := range cfg.Contexts {
		refClusters[cfg.Contexts[i].Context.Cluster] = struct{}{}
		refUsers[cfg.Contexts[i].Context.User] = struct{}{}
	}

	for i := range cfg.Clusters {
		if _, ok := refClusters[cfg.Clusters[i].Name]; !ok {
			clusters = append(clusters, cfg.Clusters[i].Name)
		}
	}
	for i := range cfg.Users {
		if _, ok := refUsers[cfg.Users[i].Name]; !ok {
			users = append(users, cfg.Users[i].Name)
		}
	}
	return clusters, users
}
