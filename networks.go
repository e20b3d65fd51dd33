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
	"github.com/meridian-ledger/go-meridian/network"
	"github.com/meridian-ledger/go-meridian/types"
)

// NetworkProfile is a named network definition: an ordered node list, a
// mirror endpoint, and a ledger identifier
type NetworkProfile struct {
	Name          string
	LedgerID      string
	MirrorAddress string
	Nodes         []NetworkProfileNode
}

type NetworkProfileNode struct {
	AccountID types.AccountID
	Address   string
}

// Network builds a network topology from the profile
func (p NetworkProfile) Network() (*network.Network, error) {
	nodes := make([]*network.Node, 0, len(p.Nodes))
	for _, profileNode := range p.Nodes {
		nodes = append(
			nodes,
			network.NewNode(profileNode.AccountID, profileNode.Address),
		)
	}
	return network.NewNetwork(nodes, p.MirrorAddress, p.LedgerID)
}

// Network definitions
var (
	NetworkMainnet = NetworkProfile{
		Name:          "mainnet",
		LedgerID:      "meridian-mainnet",
		MirrorAddress: "mirror.meridianledger.io:5600",
		Nodes: []NetworkProfileNode{
			{AccountID: types.NewAccountID(0, 0, 3), Address: "node1.meridianledger.io:50211"},
			{AccountID: types.NewAccountID(0, 0, 4), Address: "node2.meridianledger.io:50211"},
			{AccountID: types.NewAccountID(0, 0, 5), Address: "node3.meridianledger.io:50211"},
			{AccountID: types.NewAccountID(0, 0, 6), Address: "node4.meridianledger.io:50211"},
		},
	}
	NetworkTestnet = NetworkProfile{
		Name:          "testnet",
		LedgerID:      "meridian-testnet",
		MirrorAddress: "mirror.testnet.meridianledger.io:5600",
		Nodes: []NetworkProfileNode{
			{AccountID: types.NewAccountID(0, 0, 3), Address: "node1.testnet.meridianledger.io:50211"},
			{AccountID: types.NewAccountID(0, 0, 4), Address: "node2.testnet.meridianledger.io:50211"},
			{AccountID: types.NewAccountID(0, 0, 5), Address: "node3.testnet.meridianledger.io:50211"},
		},
	}
	NetworkPreview = NetworkProfile{
		Name:          "preview",
		LedgerID:      "meridian-preview",
		MirrorAddress: "mirror.preview.meridianledger.io:5600",
		Nodes: []NetworkProfileNode{
			{AccountID: types.NewAccountID(0, 0, 3), Address: "node1.preview.meridianledger.io:50211"},
			{AccountID: types.NewAccountID(0, 0, 4), Address: "node2.preview.meridianledger.io:50211"},
		},
	}

	NetworkInvalid = NetworkProfile{} // NetworkInvalid is used as a return value for lookup functions when a network isn't found
)

// NetworkByName returns the named network profile, or NetworkInvalid if the
// name isn't known
func NetworkByName(name string) NetworkProfile {
	switch name {
	case "mainnet":
		return NetworkMainnet
	case "testnet":
		return NetworkTestnet
	case "preview":
		return NetworkPreview
	}
	return NetworkInvalid
}
