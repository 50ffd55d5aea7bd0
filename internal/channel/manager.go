package channel

import (
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/kamil5b/go-metafs-client/internal/logger"
	"github.com/kamil5b/go-metafs-client/internal/rpcclient"
)

// Manager owns one shared RPC channel per metaserver identity. Channels are
// created lazily on first use, shared across concurrent tasks (the substrate
// multiplexes) and destroyed when the substrate reports them unhealthy or
// when the manager is closed.
type Manager struct {
	mu       sync.Mutex
	conns    map[rpcclient.MetaServerID]*grpc.ClientConn
	dialOpts []grpc.DialOption
}

var _ rpcclient.ChannelManager = (*Manager)(nil)

// NewManager builds a channel manager. Extra dial options are applied to
// every channel it creates; transport security is the caller's concern and
// defaults to plaintext.
func NewManager(dialOpts ...grpc.DialOption) *Manager {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}
	opts = append(opts, dialOpts...)
	return &Manager{
		conns:    make(map[rpcclient.MetaServerID]*grpc.ClientConn),
		dialOpts: opts,
	}
}

// GetOrCreateChannel returns the shared channel for a metaserver, creating it
// on first use. Creation for the same id is serialized so concurrent tasks
// never race into duplicate channels.
func (m *Manager) GetOrCreateChannel(id rpcclient.MetaServerID, endpoint string) (*grpc.ClientConn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conn, ok := m.conns[id]; ok {
		return conn, nil
	}

	conn, err := grpc.NewClient(endpoint, m.dialOpts...)
	if err != nil {
		return nil, err
	}
	m.conns[id] = conn
	return conn, nil
}

// ResetSenderIfNotHealth discards the metaserver's channel when the substrate
// reports it broken, forcing recreation on next use. A healthy or merely idle
// channel is left alone.
func (m *Manager) ResetSenderIfNotHealth(id rpcclient.MetaServerID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conn, ok := m.conns[id]
	if !ok {
		return
	}

	switch conn.GetState() {
	case connectivity.TransientFailure, connectivity.Shutdown:
		if err := conn.Close(); err != nil {
			logger.WithField("metaserver_id", id).WithError(err).Warn("close channel failed")
		}
		delete(m.conns, id)
	}
}

// Close tears down every channel. Only for process shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, conn := range m.conns {
		if err := conn.Close(); err != nil {
			logger.WithField("metaserver_id", id).WithError(err).Warn("close channel failed")
		}
		delete(m.conns, id)
	}
}
