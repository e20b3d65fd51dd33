// Copyright 2025 Meridian Ledger Foundation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package meridian

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/network"
	"github.com/meridian-ledger/go-meridian/types"
)

// TopologyConfig represents a Meridian network topology config file
type TopologyConfig struct {
	LedgerID      string                  `toml:"ledger-id"`
	MirrorAddress string                  `toml:"mirror-address"`
	Nodes         []TopologyConfigNode    `toml:"nodes"`
	Operator      *TopologyConfigOperator `toml:"operator"`
}

type TopologyConfigNode struct {
	AccountID string `toml:"account-id"`
	Address   string `toml:"address"`
}

type TopologyConfigOperator struct {
	AccountID  string `toml:"account-id"`
	PrivateKey string `toml:"private-key"`
}

func NewTopologyConfigFromFile(path string) (*TopologyConfig, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dataFile.Close()
	return NewTopologyConfigFromReader(dataFile)
}

func NewTopologyConfigFromReader(r io.Reader) (*TopologyConfig, error) {
	t := &TopologyConfig{}
	if _, err := toml.NewDecoder(r).Decode(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Network builds a network topology from the config
func (t *TopologyConfig) Network() (*network.Network, error) {
	nodes := make([]*network.Node, 0, len(t.Nodes))
	for _, configNode := range t.Nodes {
		accountID, err := types.ParseAccountID(configNode.AccountID)
		if err != nil {
			return nil, fmt.Errorf("node account ID: %w", err)
		}
		nodes = append(nodes, network.NewNode(accountID, configNode.Address))
	}
	return network.NewNetwork(nodes, t.MirrorAddress, t.LedgerID)
}

// ClientFromConfig returns a client for the configured topology. If the
// config carries an operator section, the operator identity is applied
// before the provided options
func ClientFromConfig(t *TopologyConfig, options ...ClientOption) (*Client, error) {
	net, err := t.Network()
	if err != nil {
		return nil, err
	}
	client, err := NewClient(net, options...)
	if err != nil {
		return nil, err
	}
	if t.Operator != nil {
		accountID, err := types.ParseAccountID(t.Operator.AccountID)
		if err != nil {
			return nil, fmt.Errorf("operator account ID: %w", err)
		}
		key, err := keys.PrivateKeyFromHex(t.Operator.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("operator key: %w", err)
		}
		// Only apply the config operator if an option didn't already set one
		if client.OperatorAccountID().IsZero() {
			client.SetOperator(accountID, key)
		}
	}
	return client, nil
}

// ClientFromConfigFile returns a client for the topology described by the
// given config file
func ClientFromConfigFile(path string, options ...ClientOption) (*Client, error) {
	t, err := NewTopologyConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	return ClientFromConfig(t, options...)
}
