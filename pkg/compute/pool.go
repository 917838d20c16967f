package compute

import (
	"fmt"
	"sync"
)

// DialFunc 建立到计算节点的连接
type DialFunc func(uri string) (Client, error)

// Pool 按主机缓存计算节点客户端
// 连接按需建立，失败的连接不缓存
type Pool struct {
	mu      sync.Mutex
	clients map[string]Client
	dial    DialFunc
}

// NewPool 创建客户端池
// dial 为 nil 时使用默认的 libvirt 连接
func NewPool(dial DialFunc) *Pool {
	if dial == nil {
		dial = Dial
	}
	return &Pool{
		clients: make(map[string]Client),
		dial:    dial,
	}
}

// Get 获取或创建指定主机的客户端
func (p *Pool) Get(host, uri string) (Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[host]; ok {
		return client, nil
	}

	client, err := p.dial(uri)
	if err != nil {
		return nil, fmt.Errorf("dial compute node %s: %w", host, err)
	}
	p.clients[host] = client
	return client, nil
}

// Forget 移除并关闭指定主机的缓存连接
// 远程调用失败后调用，下次访问重新建连
func (p *Pool) Forget(host string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[host]; ok {
		_ = client.Close()
		delete(p.clients, host)
	}
}

// Close 关闭池中所有连接
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for host, client := range p.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.clients, host)
	}
	return firstErr
}
