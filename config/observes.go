package config

import (
	"time"

	"github.com/spf13/viper"
)

// Tracer config struct for OpenTelemetry
type Tracer struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"` // OTLP gRPC endpoint

	ServiceName    string `json:"service_name" yaml:"service_name"`
	ServiceVersion string `json:"service_version" yaml:"service_version"`
	Environment    string `json:"environment" yaml:"environment"`

	SamplingRate float64       `json:"sampling_rate" yaml:"sampling_rate"` // 0.0 to 1.0
	BatchTimeout time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
}

// Enabled reports whether an endpoint is configured.
func (t *Tracer) Enabled() bool {
	return t != nil && t.Endpoint != ""
}

func getTracerConfig(v *viper.Viper) *Tracer {
	return &Tracer{
		Endpoint:       v.GetString("observes.tracer.endpoint"),
		ServiceName:    orDefault(v, "observes.tracer.service_name", orDefault(v, "app_name", "datatable", v.GetString), v.GetString),
		ServiceVersion: v.GetString("observes.tracer.service_version"),
		Environment:    orDefault(v, "observes.tracer.environment", v.GetString("run_mode"), v.GetString),
		SamplingRate:   orDefault(v, "observes.tracer.sampling_rate", 1.0, v.GetFloat64),
		BatchTimeout:   orDefault(v, "observes.tracer.batch_timeout", 5*time.Second, v.GetDuration),
	}
}

// Observes config struct
type Observes struct {
	Tracer *Tracer
}

func getObservesConfig(v *viper.Viper) *Observes {
	return &Observes{
		Tracer: getTracerConfig(v),
	}
}
