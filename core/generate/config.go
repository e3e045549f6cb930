package generate

// Config holds configuration for generation output.
type Config struct {
	// OutputDir is where finished archives are written.
	OutputDir string `mapstructure:"output_dir" default:"./data/output"`
	// Upload pushes finished archives to object storage as well.
	Upload bool `mapstructure:"upload" default:"false"`
	// Prefix is the object key prefix for uploaded archives.
	Prefix string `mapstructure:"prefix" default:"archives"`
}
