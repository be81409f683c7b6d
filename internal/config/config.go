package config

import "fmt"

type Config struct {
	Whisper    WhisperConfig     `yaml:"whisper"`
	FFmpeg     FFmpegConfig      `yaml:"ffmpeg"`
	Paths      PathsConfig       `yaml:"paths"`
	Logging    LoggingConfig     `yaml:"logging"`
	Summarize  SummarizeConfig   `yaml:"summarize"`
	Transcribe TranscribeConfig  `yaml:"transcribe"`
	Server     ServerConfig      `yaml:"server"`
	APIKeys    map[string]string `yaml:"api_keys"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	AudioCodec   string `yaml:"audio_codec"`
	SampleRate   int    `yaml:"sample_rate"`
	Channels     int    `yaml:"channels"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type PathsConfig struct {
	Downloads      string `yaml:"downloads"`
	Uploads        string `yaml:"uploads"`
	Transcriptions string `yaml:"transcriptions"`
	Summaries      string `yaml:"summaries"`
	Reports        string `yaml:"reports"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SummarizeConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	MaxChunkLen int    `yaml:"max_chunk_len"`
	MaxPasses   int    `yaml:"max_passes"`
	PromptName  string `yaml:"prompt_template"`
	ExportDocx  bool   `yaml:"export_docx"`
}

type TranscribeConfig struct {
	SinglePassLimitMB int `yaml:"single_pass_limit_mb"`
	ChunkSeconds      int `yaml:"chunk_seconds"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func (c *Config) Validate() error {
	if c.Summarize.MaxChunkLen < 0 {
		return fmt.Errorf("summarize.max_chunk_len must be positive")
	}
	if c.Summarize.MaxPasses < 0 {
		return fmt.Errorf("summarize.max_passes must be positive")
	}
	if c.Transcribe.ChunkSeconds < 0 {
		return fmt.Errorf("transcribe.chunk_seconds must be positive")
	}
	if c.Transcribe.SinglePassLimitMB < 0 {
		return fmt.Errorf("transcribe.single_pass_limit_mb must be positive")
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "small"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "mp3"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 44100
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 2
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.Paths.Downloads == "" {
		c.Paths.Downloads = "downloads"
	}
	if c.Paths.Uploads == "" {
		c.Paths.Uploads = "uploads"
	}
	if c.Paths.Transcriptions == "" {
		c.Paths.Transcriptions = "transcriptions"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "summaries"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "reports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Summarize.Provider == "" {
		c.Summarize.Provider = "deepseek"
	}
	if c.Summarize.Model == "" {
		c.Summarize.Model = "deepseek-chat"
	}
	if c.Summarize.MaxChunkLen == 0 {
		c.Summarize.MaxChunkLen = 15000
	}
	if c.Summarize.MaxPasses == 0 {
		c.Summarize.MaxPasses = 5
	}
	if c.Summarize.PromptName == "" {
		c.Summarize.PromptName = "default"
	}
	if c.Transcribe.SinglePassLimitMB == 0 {
		c.Transcribe.SinglePassLimitMB = 100
	}
	if c.Transcribe.ChunkSeconds == 0 {
		c.Transcribe.ChunkSeconds = 600
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	return nil
}
