package core

import (
	"google.golang.org/grpc"

	"github.com/kamil5b/go-metafs-client/internal/channel"
	"github.com/kamil5b/go-metafs-client/internal/metacache"
	"github.com/kamil5b/go-metafs-client/internal/metaserver"
	"github.com/kamil5b/go-metafs-client/internal/metric"
)

// Container wires the client stack: resolver → cache → channels → stubs.
// Construct one per mounted filesystem client; the pieces are shared by every
// operation issued through it.
type Container struct {
	MetaCache        *metacache.MetaCache
	ChannelManager   *channel.Manager
	Metric           *metric.MetaServerClientMetric
	MetaServerClient *metaserver.Client
}

// NewContainer assembles the client from config and the caller's cluster
// resolver. Extra dial options apply to every channel created.
func NewContainer(cfg *Config, resolver metacache.ClusterResolver, dialOpts ...grpc.DialOption) *Container {
	cache := metacache.NewMetaCache(cfg.Client.Cache, resolver)
	channels := channel.NewManager(dialOpts...)
	m := metric.NewMetaServerClientMetric(cfg.Client.MetricPrefix)
	client := metaserver.NewClient(cfg.Client.Executor, cache, channels, m)

	return &Container{
		MetaCache:        cache,
		ChannelManager:   channels,
		Metric:           m,
		MetaServerClient: client,
	}
}

// Close releases the container's channels.
func (c *Container) Close() {
	c.ChannelManager.Close()
}
