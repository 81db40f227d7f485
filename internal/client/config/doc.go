// Package config loads runtime configuration for the taskpad client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or $TASKPAD_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the record store gRPC endpoint
//	-i int      online status check interval (seconds)
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-l string   public URL template ({bucket}, {key})
//	-v string   log level
//
// # JSON schema
//
// Intervals may be strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "s3_bucket": "task-pdfs",
//	  "s3_public_url_template": "https://cdn.example/{key}"
//	}
package config
