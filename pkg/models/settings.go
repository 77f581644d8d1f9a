package models

// Settings represents the application configuration
type Settings struct {
	Documents DocumentSettings `yaml:"documents" mapstructure:"documents"`
	UI        UISettings       `yaml:"ui" mapstructure:"ui"`
	Log       LogSettings      `yaml:"log" mapstructure:"log"`
}

// DocumentSettings controls where documents live
type DocumentSettings struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview   bool `yaml:"show_preview" mapstructure:"show_preview"`
	ConfirmDelete bool `yaml:"confirm_delete" mapstructure:"confirm_delete"` // empty documents never ask
}

// LogSettings controls structured logging
type LogSettings struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
	Sink   string `yaml:"sink" mapstructure:"sink"`     // "stderr", "file" or "none"
	File   string `yaml:"file" mapstructure:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Documents: DocumentSettings{
			Dir: ".",
		},
		UI: UISettings{
			ShowPreview:   true,
			ConfirmDelete: true,
		},
		Log: LogSettings{
			Level:  "error",
			Format: "text",
			Sink:   "stderr",
		},
	}
}

// OpenPointer records the document that was open when the picker last ran.
// It is stored next to the configuration, never in the document directory.
type OpenPointer struct {
	Dir  string `yaml:"dir"`
	Path string `yaml:"path"`
}
