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
	"strings"
	"testing"

	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/types"
)

const testTopologyConfig = `
ledger-id = "meridian-local"
mirror-address = "127.0.0.1:5600"

[[nodes]]
account-id = "0.0.3"
address = "127.0.0.1:50211"

[[nodes]]
account-id = "0.0.4"
address = "127.0.0.1:50212"

[operator]
account-id = "0.0.1001"
private-key = "0000000000000000000000000000000000000000000000000000000000000001"
`

func TestTopologyConfigFromReader(t *testing.T) {
	config, err := NewTopologyConfigFromReader(strings.NewReader(testTopologyConfig))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if config.LedgerID != "meridian-local" {
		t.Fatalf("unexpected ledger ID: %s", config.LedgerID)
	}
	if len(config.Nodes) != 2 {
		t.Fatalf("unexpected node count: %d", len(config.Nodes))
	}
	if config.Nodes[1].Address != "127.0.0.1:50212" {
		t.Fatalf("unexpected node address: %s", config.Nodes[1].Address)
	}
	if config.Operator == nil || config.Operator.AccountID != "0.0.1001" {
		t.Fatalf("unexpected operator: %+v", config.Operator)
	}
}

func TestTopologyConfigNetwork(t *testing.T) {
	config, err := NewTopologyConfigFromReader(strings.NewReader(testTopologyConfig))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	net, err := config.Network()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer net.Close()
	if net.LedgerID() != "meridian-local" {
		t.Fatalf("unexpected ledger ID: %s", net.LedgerID())
	}
	node, ok := net.NodeForAccountID(types.NewAccountID(0, 0, 4))
	if !ok {
		t.Fatalf("expected node lookup to succeed")
	}
	if node.Address() != "127.0.0.1:50212" {
		t.Fatalf("unexpected node address: %s", node.Address())
	}
}

func TestClientFromConfig(t *testing.T) {
	config, err := NewTopologyConfigFromReader(strings.NewReader(testTopologyConfig))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	client, err := ClientFromConfig(config)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer client.Close()
	if client.OperatorAccountID() != types.NewAccountID(0, 0, 1001) {
		t.Fatalf("unexpected operator account: %s", client.OperatorAccountID())
	}
	if client.OperatorKey().IsZero() {
		t.Fatalf("expected operator key to be set")
	}
}

func TestClientFromConfigOperatorOptionWins(t *testing.T) {
	config, err := NewTopologyConfigFromReader(strings.NewReader(testTopologyConfig))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	priv, err := keys.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	optionOperator := types.NewAccountID(0, 0, 7777)
	client, err := ClientFromConfig(config, WithOperator(optionOperator, priv))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer client.Close()
	if client.OperatorAccountID() != optionOperator {
		t.Fatalf("unexpected operator account: %s", client.OperatorAccountID())
	}
}

func TestTopologyConfigBadOperatorKey(t *testing.T) {
	badConfig := strings.ReplaceAll(
		testTopologyConfig,
		"0000000000000000000000000000000000000000000000000000000000000001",
		"not hex",
	)
	config, err := NewTopologyConfigFromReader(strings.NewReader(badConfig))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := ClientFromConfig(config); err == nil {
		t.Fatalf("expected error, got none")
	}
}

func TestTopologyConfigBadNodeAccountID(t *testing.T) {
	badConfig := strings.Replace(testTopologyConfig, "0.0.3", "zero.zero.three", 1)
	config, err := NewTopologyConfigFromReader(strings.NewReader(badConfig))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, err := config.Network(); err == nil {
		t.Fatalf("expected error, got none")
	}
}
