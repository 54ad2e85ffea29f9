package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr    = "JOURNAL_GRPC_ADDR"
	EnvHTTPAddr    = "JOURNAL_HTTP_ADDR"
	EnvDatabaseDSN = "DATABASE_DSN"
	EnvSecretKey   = "JWT_SECRET"
	EnvS3User      = "S3_ROOT_USER"
	EnvS3Password  = "S3_ROOT_PASSWORD"
	EnvS3Bucket    = "S3_BUCKET"
	EnvS3Region    = "S3_REGION"
	EnvS3Endpoint  = "S3_ENDPOINT"
)

// parseEnv overlays config with environment variables, loading a .env file
// from the working directory first. Process variables win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	for key, dst := range map[string]*string{
		EnvGRPCAddr:    &config.EndpointAddrGRPC,
		EnvHTTPAddr:    &config.EndpointAddrHTTP,
		EnvDatabaseDSN: &config.DatabaseDSN,
		EnvSecretKey:   &config.SecretKey,
		EnvS3User:      &config.S3RootUser,
		EnvS3Password:  &config.S3RootPassword,
		EnvS3Bucket:    &config.S3Bucket,
		EnvS3Region:    &config.S3Region,
		EnvS3Endpoint:  &config.S3BaseEndpoint,
	} {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}
