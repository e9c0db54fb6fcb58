package config

import (
	"fmt"

	"example.com/MikuTransfer/pkg/models"
	"example.com/MikuTransfer/pkg/utils/concurrent"
)

type Provider struct {
	cfg         *Configuration
	lookupIndex *concurrent.Map[string, string]
}

func NewProvider(cfg *Configuration) ConfigProvider {
	provider := Provider{
		cfg:         cfg,
		lookupIndex: concurrent.NewMap[string, string](concurrent.HashString),
	}
	provider.init()
	return provider
}

// add 将节点及其所有标识符加入索引
// Host 或 Identity 尚未保存时只索引节点ID和别名
func (cp Provider) add(nodeId string) {
	node, ok := cp.GetNode(nodeId)
	if !ok {
		return
	}
	cp.lookupIndex.Set(nodeId, nodeId)
	for _, alias := range node.Alias {
		if alias == "" {
			continue
		}
		cp.lookupIndex.Set(alias, nodeId)
	}

	identity, iok := cp.GetIdentity(nodeId)
	host, hok := cp.GetHost(nodeId)
	if !iok || !hok || identity.User == "" {
		return
	}
	cp.lookupIndex.Set(fmt.Sprintf("%s@%s:%d", identity.User, host.Address, host.Port), nodeId)
	for _, addr := range host.Alias {
		if addr == "" {
			continue
		}
		cp.lookupIndex.Set(fmt.Sprintf("%s@%s:%d", identity.User, addr, host.Port), nodeId)
	}
}

// Find 匹配用户输入 (节点ID / user@host:port / 别名)
func (cp Provider) Find(input string) string {
	if nodeId, ok := cp.lookupIndex.Get(input); ok {
		return nodeId
	}
	return ""
}

func (cp Provider) GetNode(nodeId string) (models.Node, bool) {
	return cp.cfg.Nodes.Get(nodeId)
}

func (cp Provider) GetHost(nodeId string) (models.Host, bool) {
	if node, ok := cp.cfg.Nodes.Get(nodeId); ok {
		return cp.cfg.Hosts.Get(node.HostRef)
	}
	return models.Host{}, false
}

func (cp Provider) GetIdentity(nodeId string) (models.Identity, bool) {
	if node, ok := cp.cfg.Nodes.Get(nodeId); ok {
		return cp.cfg.Identities.Get(node.IdentityRef)
	}
	return models.Identity{}, false
}

func (cp Provider) AddNode(nodeId string, node models.Node) {
	cp.cfg.Nodes.Set(nodeId, node)
	cp.add(nodeId)
}

func (cp Provider) AddHost(hostId string, host models.Host) {
	cp.cfg.Hosts.Set(hostId, host)
}

func (cp Provider) AddIdentity(identityId string, identity models.Identity) {
	cp.cfg.Identities.Set(identityId, identity)
}

func (cp Provider) DeleteNode(nodeId string) {
	if _, ok := cp.cfg.Nodes.Get(nodeId); ok {
		// Host 和 Identity 可能被多个 Node 引用,只删节点本身
		cp.cfg.Nodes.Remove(nodeId)

		for _, key := range cp.lookupIndex.Keys() {
			if val, ok := cp.lookupIndex.Get(key); ok && val == nodeId {
				cp.lookupIndex.Remove(key)
			}
		}
	}
}

func (cp Provider) ListNodes() map[string]models.Node {
	nodes := make(map[string]models.Node)
	for _, k := range cp.cfg.Nodes.Keys() {
		if v, ok := cp.cfg.Nodes.Get(k); ok {
			nodes[k] = v
		}
	}
	return nodes
}

func (cp Provider) init() {
	for _, nodeId := range cp.cfg.Nodes.Keys() {
		cp.add(nodeId)
	}
}
