// Process configuration, sourced from environment variables.
//
// One Config is built at process entry with Load and passed by injection to
// the components that need it. A missing required variable is a startup
// error; nothing here is re-read at runtime.
package backend

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	port     int32
	cluster  *ClusterConfig
	registry *RegistryConfig
	image    *ImageConfig
	storage  *StorageConfig
	auth     *AuthConfig
	database string
}

// port the API server listens on.
func (c *Config) Port() int32 {
	return c.port
}

func (c *Config) Cluster() *ClusterConfig {
	return c.cluster
}

func (c *Config) Registry() *RegistryConfig {
	return c.registry
}

func (c *Config) Image() *ImageConfig {
	return c.image
}

func (c *Config) Storage() *StorageConfig {
	return c.storage
}

func (c *Config) Auth() *AuthConfig {
	return c.auth
}

// Connection string for the relational store.
func (c *Config) Database() string {
	return c.database
}

// Cluster-facing settings for prediction services.
type ClusterConfig struct {
	hostName            string
	deploymentPath      string
	deploymentPort      int32
	monitoringNamespace string
	grafanaURL          string
}

// public host name serving the ingress.
func (c *ClusterConfig) HostName() string {
	return c.hostName
}

// URL path prefix under which prediction services are exposed.
func (c *ClusterConfig) DeploymentPath() string {
	return c.deploymentPath
}

// port prediction services listen on.
func (c *ClusterConfig) DeploymentPort() int32 {
	return c.deploymentPort
}

// namespace holding Grafana and its dashboard ConfigMaps.
func (c *ClusterConfig) MonitoringNamespace() string {
	return c.monitoringNamespace
}

// base URL of the Grafana instance; empty when dashboards have no
// reachable front end.
func (c *ClusterConfig) GrafanaURL() string {
	return c.grafanaURL
}

// Per-project artifact-registry settings.
type RegistryConfig struct {
	path          string
	port          int32
	image         string
	sweepInterval time.Duration
	ttl           time.Duration
}

// URL path prefix under which project registries are exposed.
func (c *RegistryConfig) Path() string {
	return c.path
}

// port project registries listen on.
func (c *RegistryConfig) Port() int32 {
	return c.port
}

// container image run as a project registry.
func (c *RegistryConfig) Image() string {
	return c.image
}

// interval of the connection-pool sweep loop.
func (c *RegistryConfig) SweepInterval() time.Duration {
	return c.sweepInterval
}

// age past which a pooled connection is evicted.
func (c *RegistryConfig) TTL() time.Duration {
	return c.ttl
}

// Image-build settings for prediction services.
type ImageConfig struct {
	registry string
}

// host (and optional port) of the image registry built images are
// pushed to and the cluster pulls them from, e.g. "registry.example.com:5000".
// Distinct from the per-project model registries, which store artifacts,
// not images.
func (c *ImageConfig) Registry() string {
	return c.registry
}

// Credentials for the artifact store backing the registries.
type StorageConfig struct {
	endpoint  string
	accessKey string
	secretKey string
}

func (c *StorageConfig) Endpoint() string {
	return c.endpoint
}

func (c *StorageConfig) AccessKey() string {
	return c.accessKey
}

func (c *StorageConfig) SecretKey() string {
	return c.secretKey
}

type AuthConfig struct {
	jwtSecret string
	jwtExpiry time.Duration
}

func (c *AuthConfig) JWTSecret() string {
	return c.jwtSecret
}

func (c *AuthConfig) JWTExpiry() time.Duration {
	return c.jwtExpiry
}

const (
	defaultRegistryImage       = "ghcr.io/mlflow/mlflow:v2.9.2"
	defaultMonitoringNamespace = "monitoring"
	defaultSweepInterval       = 60 * time.Second
	defaultJWTExpiry           = 600 * time.Second
)

// Load builds Config from the environment.
//
// Required variables: MP_HOST_NAME, MP_DEPLOYMENT_PATH, MP_DEPLOYMENT_PORT,
// MP_REGISTRY_PATH, MP_REGISTRY_PORT, MP_IMAGE_REGISTRY, MP_DATABASE_URL,
// MP_JWT_SECRET, MP_STORAGE_ENDPOINT, MP_STORAGE_ACCESS_KEY,
// MP_STORAGE_SECRET_KEY.
func Load() (*Config, error) {
	var missing []string
	require := func(key string) string {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			missing = append(missing, key)
		}
		return v
	}
	optional := func(key string, fallback string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		return fallback
	}

	hostName := require("MP_HOST_NAME")
	deploymentPath := require("MP_DEPLOYMENT_PATH")
	deploymentPortRaw := require("MP_DEPLOYMENT_PORT")
	registryPath := require("MP_REGISTRY_PATH")
	registryPortRaw := require("MP_REGISTRY_PORT")
	imageRegistry := require("MP_IMAGE_REGISTRY")
	database := require("MP_DATABASE_URL")
	jwtSecret := require("MP_JWT_SECRET")
	storageEndpoint := require("MP_STORAGE_ENDPOINT")
	storageAccessKey := require("MP_STORAGE_ACCESS_KEY")
	storageSecretKey := require("MP_STORAGE_SECRET_KEY")

	if 0 < len(missing) {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	deploymentPort, err := parsePort("MP_DEPLOYMENT_PORT", deploymentPortRaw)
	if err != nil {
		return nil, err
	}
	registryPort, err := parsePort("MP_REGISTRY_PORT", registryPortRaw)
	if err != nil {
		return nil, err
	}

	sweepInterval, err := parseSeconds(
		"MP_POOL_SWEEP_INTERVAL", optional("MP_POOL_SWEEP_INTERVAL", ""), defaultSweepInterval,
	)
	if err != nil {
		return nil, err
	}
	// staleness is measured against the sweep cadence unless overridden.
	ttl, err := parseSeconds("MP_POOL_TTL", optional("MP_POOL_TTL", ""), sweepInterval)
	if err != nil {
		return nil, err
	}
	jwtExpiry, err := parseSeconds("MP_JWT_EXPIRY", optional("MP_JWT_EXPIRY", ""), defaultJWTExpiry)
	if err != nil {
		return nil, err
	}
	port, err := parsePort("MP_PORT", optional("MP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	return &Config{
		port: port,
		cluster: &ClusterConfig{
			hostName:            hostName,
			deploymentPath:      deploymentPath,
			deploymentPort:      deploymentPort,
			monitoringNamespace: optional("MP_MONITORING_NAMESPACE", defaultMonitoringNamespace),
			grafanaURL:          optional("MP_GRAFANA_URL", ""),
		},
		registry: &RegistryConfig{
			path:          registryPath,
			port:          registryPort,
			image:         optional("MP_REGISTRY_IMAGE", defaultRegistryImage),
			sweepInterval: sweepInterval,
			ttl:           ttl,
		},
		image: &ImageConfig{
			registry: imageRegistry,
		},
		storage: &StorageConfig{
			endpoint:  storageEndpoint,
			accessKey: storageAccessKey,
			secretKey: storageSecretKey,
		},
		auth: &AuthConfig{
			jwtSecret: jwtSecret,
			jwtExpiry: jwtExpiry,
		},
		database: database,
	}, nil
}

func parsePort(key string, raw string) (int32, error) {
	p, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || p <= 0 || 65535 < p {
		return 0, fmt.Errorf("%s: not a valid port: %q", key, raw)
	}
	return int32(p), nil
}

func parseSeconds(key string, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	s, err := strconv.Atoi(raw)
	if err != nil || s <= 0 {
		return 0, fmt.Errorf("%s: not a positive number of seconds: %q", key, raw)
	}
	return time.Duration(s) * time.Second, nil
}
