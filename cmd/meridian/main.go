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

package main

import (
	"flag"
	"fmt"
	"os"

	meridian "github.com/meridian-ledger/go-meridian"
	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/types"
)

type globalFlags struct {
	flagset     *flag.FlagSet
	config      string
	network     string
	operatorID  string
	operatorKey string
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.config,
		"config",
		"",
		"path to a topology config file (overrides -network)",
	)
	f.flagset.StringVar(
		&f.network,
		"network",
		"preview",
		"specifies named network to connect to",
	)
	f.flagset.StringVar(
		&f.operatorID,
		"operator-id",
		"",
		"operator account ID in shard.realm.num format",
	)
	f.flagset.StringVar(
		&f.operatorKey,
		"operator-key",
		"",
		"operator private key in hex format",
	)
	return f
}

func main() {
	f := newGlobalFlags()
	if err := f.flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	if len(f.flagset.Args()) == 0 {
		fmt.Printf(
			"You must specify a subcommand (transfer, create-account, balance, or info)\n",
		)
		os.Exit(1)
	}
	switch f.flagset.Arg(0) {
	case "transfer":
		runTransfer(f)
	case "create-account":
		runCreateAccount(f)
	case "balance":
		runBalance(f)
	case "info":
		runInfo(f)
	default:
		fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
		os.Exit(1)
	}
}

func createClient(f *globalFlags) *meridian.Client {
	var client *meridian.Client
	var err error
	if f.config != "" {
		client, err = meridian.ClientFromConfigFile(f.config)
	} else {
		client, err = meridian.ClientForName(f.network)
	}
	if err != nil {
		fmt.Printf("Failed to create client: %s\n", err)
		os.Exit(1)
	}
	if f.operatorID != "" || f.operatorKey != "" {
		accountID, err := types.ParseAccountID(f.operatorID)
		if err != nil {
			fmt.Printf("Invalid operator account ID: %s\n", err)
			os.Exit(1)
		}
		key, err := keys.PrivateKeyFromHex(f.operatorKey)
		if err != nil {
			fmt.Printf("Invalid operator key: %s\n", err)
			os.Exit(1)
		}
		client.SetOperator(accountID, key)
	}
	return client
}

func parseAccountArg(s string, name string) types.AccountID {
	accountID, err := types.ParseAccountID(s)
	if err != nil {
		fmt.Printf("Invalid %s: %s\n", name, err)
		os.Exit(1)
	}
	return accountID
}
