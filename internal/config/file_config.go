package config

// FileConfig - ограничения на загружаемый файл
type FileConfig struct {
	MaxSize    int64    `yaml:"max_size"`   // bytes
	Extensions []string `yaml:"extensions"` // без точки, в нижнем регистре
}

var DefaultPortfolioFileConfig = FileConfig{
	MaxSize:    200 * 1024 * 1024, // 200MB
	Extensions: []string{"jpg", "jpeg", "png", "gif", "webp", "mp4", "mov", "avi", "wmv", "flv", "webm"},
}

var DefaultContactVideoFileConfig = FileConfig{
	MaxSize:    50 * 1024 * 1024, // 50MB
	Extensions: []string{"mp4", "mov", "avi", "wmv", "flv", "webm"},
}

func (f *FileConfig) fill(def FileConfig) {
	if f.MaxSize == 0 {
		f.MaxSize = def.MaxSize
	}
	if len(f.Extensions) == 0 {
		f.Extensions = append([]string(nil), def.Extensions...)
	}
}
