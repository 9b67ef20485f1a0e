package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ytclip/internal/dirs"
	"ytclip/internal/model"
	"ytclip/internal/publish"
)

// Keys read through viper. Flags, YTCLIP_* environment variables and the
// config file all map onto these names.
const (
	KeyDLBinary     = "dl_binary"
	KeyFFmpegBinary = "ffmpeg_binary"
	KeyVerbose      = "verbose"
	KeyNoUI         = "no_ui"
	KeyLogFormat    = "log_format"
	KeyWidth        = "width"
	KeyFPS          = "fps"
	KeyQuality      = "quality"
	KeyColors       = "colors"
	KeyPublish      = "publish"
	KeyS3Region     = "s3.region"
	KeyS3AccessKey  = "s3.access_key"
	KeyS3SecretKey  = "s3.secret_key"
	KeyS3Endpoint   = "s3.endpoint"
	KeyGCSCredFile  = "gcs.credentials_file"
	KeySiteBaseDir  = "site.base_dir"
	KeySiteProjects = "site.projects"
	KeySiteOwner    = "site.owner"
	KeyServePort    = "serve.port"
	KeyServeDir     = "serve.dir"
)

// Init wires Viper with config paths, env, defaults, and the root persistent
// flags. A missing config file is not an error; a malformed one is.
func Init(root *cobra.Command, cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if cfgDir, err := dirs.ConfigDir(); err == nil {
			viper.AddConfigPath(cfgDir)
		}
		viper.SetConfigName("config") // config.{yaml|yml|json|toml}
	}

	// Environment variables: YTCLIP_*, nested keys use _ (YTCLIP_S3_REGION).
	viper.SetEnvPrefix("YTCLIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	pf := root.PersistentFlags()
	_ = viper.BindPFlag(KeyVerbose, pf.Lookup("verbose"))
	_ = viper.BindPFlag(KeyDLBinary, pf.Lookup("dl-binary"))
	_ = viper.BindPFlag(KeyFFmpegBinary, pf.Lookup("ffmpeg-binary"))
	_ = viper.BindPFlag(KeyNoUI, pf.Lookup("no-ui"))
	_ = viper.BindPFlag(KeyLogFormat, pf.Lookup("log-format"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyWidth, model.DefaultWidth)
	viper.SetDefault(KeyFPS, model.DefaultFPS)
	viper.SetDefault(KeyQuality, string(model.QualityMedium))
	viper.SetDefault(KeyColors, model.DefaultMaxColors)
	viper.SetDefault(KeyLogFormat, "console")
	viper.SetDefault(KeyS3Region, "us-east-1")
	viper.SetDefault(KeySiteBaseDir, ".")
	viper.SetDefault(KeySiteOwner, "Portfolio")
	viper.SetDefault(KeyServeDir, ".")
	viper.SetDefault(KeyServePort, 8000)
}

// BindFlags binds command-local flags to keys. Call it from the command
// that owns the flags, once it is about to run.
func BindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		if f := fs.Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

func String(key string) string { return viper.GetString(key) }
func Int(key string) int       { return viper.GetInt(key) }
func Bool(key string) bool     { return viper.GetBool(key) }

// StringSlice returns a list value, e.g. site.projects.
func StringSlice(key string) []string { return viper.GetStringSlice(key) }

// PublishConfig collects the object storage settings.
func PublishConfig() publish.Config {
	return publish.Config{
		S3Region:           viper.GetString(KeyS3Region),
		S3AccessKey:        viper.GetString(KeyS3AccessKey),
		S3SecretKey:        viper.GetString(KeyS3SecretKey),
		S3Endpoint:         viper.GetString(KeyS3Endpoint),
		GCSCredentialsFile: viper.GetString(KeyGCSCredFile),
	}
}

// Used returns the config file in effect, if any.
func Used() string { return viper.ConfigFileUsed() }
