package config

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// GitBinary and UI are global-only and inherited by the copy.
	merged := *global

	if local.DefaultRemote != "" {
		merged.DefaultRemote = local.DefaultRemote
	}
	if local.DefaultBase != "" {
		merged.DefaultBase = local.DefaultBase
	}
	if local.Diff.IgnoreWhitespace != nil {
		merged.Diff.IgnoreWhitespace = *local.Diff.IgnoreWhitespace
	}
	if local.Diff.WordDiff != nil {
		merged.Diff.WordDiff = *local.Diff.WordDiff
	}
	if local.Status.FullPath != nil {
		merged.Status.FullPath = *local.Status.FullPath
	}
	if len(local.Hooks) > 0 {
		hooks := make(map[string]Hook, len(global.Hooks)+len(local.Hooks))
		for name, h := range global.Hooks {
			hooks[name] = h
		}
		for name, h := range local.Hooks {
			hooks[name] = h
		}
		merged.Hooks = hooks
	}

	return &merged
}
