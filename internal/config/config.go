package config

import "fmt"

// RenderSettings — неизменяемый набор параметров качества. Передаётся
// значением в каждый вызов пайплайна: никакого общего мутируемого
// состояния между запросами.
type RenderSettings struct {
	Width        int
	Height       int
	FPS          int
	VideoBitrate string
	AudioBitrate string
	VideoEncoder string
	Preset       string
	Threads      int
	Workers      int
	FontPath     string
	OutputDir    string
	ShowStats    bool
	BuildVersion string
}

// DefaultRenderSettings возвращает параметры Full HD рендера,
// совместимые с фронтендом stem-sprouts-website.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Width:        1920,
		Height:       1080,
		FPS:          60,
		VideoBitrate: "8000k",
		AudioBitrate: "320k",
		VideoEncoder: "libx264",
		Preset:       "slow",
		Threads:      4,
		Workers:      4,
		OutputDir:    "rendered_videos",
		BuildVersion: "dev",
	}
}

// ServerConfig описывает HTTP-фасад сервиса.
type ServerConfig struct {
	Host string
	Port int
}

// Addr возвращает адрес для gin.Engine.Run.
func (s ServerConfig) Addr() string {
	host := s.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := s.Port
	if port == 0 {
		port = 5000
	}
	return fmt.Sprintf("%s:%d", host, port)
}
