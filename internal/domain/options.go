package domain

// CommonOptions contains shared run options for strategies and orchestration.
type CommonOptions struct {
	Verbose      bool
	DryRun       bool
	Force        bool
	RefreshCache bool
}

// DefaultCommonOptions returns CommonOptions with default values.
func DefaultCommonOptions() CommonOptions {
	return CommonOptions{}
}
