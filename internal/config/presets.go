package config

var Presets = map[string]map[string]*Config{
	"0051": {
		"north-2016": {
			Source: "NSIDC_0051_NORTH_URL_FORMAT", Start: "2016-01-01", End: "2016-12-31",
			Colormap: "Blues", Output: OutputConfig{FPS: 12, Scale: 1},
		},
		"south-2016": {
			Source: "NSIDC_0051_SOUTH_URL_FORMAT", Start: "2016-01-01", End: "2016-12-31",
			Colormap: "Blues", Output: OutputConfig{FPS: 12, Scale: 1},
		},
		"north-melt": {
			Source: "NSIDC_0051_NORTH_URL_FORMAT", Start: "2016-06-01", End: "2016-09-30",
			Colormap: "jet", Clamp: 250, Output: OutputConfig{FPS: 8, Scale: 2},
		},
		"north-staging": {
			Source: "NSIDC_0051_NORTH_STAGING_URL_FORMAT", Start: "2016-01-01", End: "2016-02-01",
			Colormap: "Blues", Verbose: true, Output: OutputConfig{FPS: 4, Scale: 1},
		},
	},
	"0046": {
		"weekly-2010": {
			Source: "NSIDC_0046_FORMAT", Start: "2010-01-01", End: "2010-12-31",
			Mode: "weekly", Range: true, Colormap: "terrain_r", Output: OutputConfig{FPS: 4, Scale: 1},
		},
		"weekly-staging": {
			Source: "NSIDC_0046_STAGING_FORMAT", Start: "2010-01-01", End: "2010-12-31",
			Mode: "weekly", Range: true, Colormap: "gist_earth_r", Output: OutputConfig{FPS: 4, Scale: 1},
		},
		"browse-2010": {
			Source: "NSIDC_0046_BROWSE_STAGING_FORMAT", Start: "2010-01-01", End: "2010-12-31",
			Mode: "weekly", Range: true, PNG: true, Colormap: "magma", Output: OutputConfig{FPS: 4, Scale: 1},
		},
	},
}

// GetPreset returns a copy of a preset, or nil if it does not exist. The
// copy carries the default output file and logging settings.
func GetPreset(dataset, preset string) *Config {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	p, ok := datasetPresets[preset]
	if !ok {
		return nil
	}
	cfg := *p
	def := DefaultConfig()
	cfg.Output.File = def.Output.File
	cfg.Logging = def.Logging
	return &cfg
}

// FindPreset looks a preset up by name across all datasets.
func FindPreset(preset string) *Config {
	for dataset := range Presets {
		if cfg := GetPreset(dataset, preset); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(dataset string) []string {
	datasetPresets, ok := Presets[dataset]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(datasetPresets))
	for name := range datasetPresets {
		names = append(names, name)
	}
	return names
}
