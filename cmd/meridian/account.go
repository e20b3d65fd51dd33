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
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/meridian-ledger/go-meridian/keys"
	"github.com/meridian-ledger/go-meridian/query"
	"github.com/meridian-ledger/go-meridian/transaction"
)

func runCreateAccount(f *globalFlags) {
	flagset := flag.NewFlagSet("create-account", flag.ExitOnError)
	keyHex := flagset.String(
		"key",
		"",
		"public key for the new account in hex format (a fresh key pair is generated when omitted)",
	)
	balance := flagset.Uint64("balance", 0, "initial balance for the new account")
	if err := flagset.Parse(f.flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	client := createClient(f)
	defer client.Close()
	var pub keys.PublicKey
	if *keyHex != "" {
		var err error
		pub, err = keys.PublicKeyFromHex(*keyHex)
		if err != nil {
			fmt.Printf("Invalid public key: %s\n", err)
			os.Exit(1)
		}
	} else {
		priv, err := keys.GeneratePrivateKey()
		if err != nil {
			fmt.Printf("Failed to generate key: %s\n", err)
			os.Exit(1)
		}
		pub = priv.PublicKey()
		fmt.Printf("Generated private key: %s\n", priv)
	}
	tx := transaction.NewAccountCreateTransaction()
	if err := tx.SetKey(pub); err != nil {
		fmt.Printf("Failed to build transaction: %s\n", err)
		os.Exit(1)
	}
	if err := tx.SetInitialBalance(*balance); err != nil {
		fmt.Printf("Failed to build transaction: %s\n", err)
		os.Exit(1)
	}
	receipt, err := tx.Execute(context.Background(), client)
	if err != nil {
		fmt.Printf("Failed to execute transaction: %s\n", err)
		os.Exit(1)
	}
	if receipt.AccountID == nil {
		fmt.Printf("Account created but no account ID was returned\n")
		os.Exit(1)
	}
	fmt.Printf("Created account %s\n", receipt.AccountID)
}

func runBalance(f *globalFlags) {
	flagset := flag.NewFlagSet("balance", flag.ExitOnError)
	account := flagset.String("account", "", "account ID in shard.realm.num format")
	if err := flagset.Parse(f.flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if *account == "" {
		fmt.Printf("You must specify -account\n")
		os.Exit(1)
	}
	client := createClient(f)
	defer client.Close()
	q := query.NewAccountBalanceQuery()
	q.SetAccountID(parseAccountArg(*account, "account ID"))
	balance, err := q.Execute(context.Background(), client)
	if err != nil {
		fmt.Printf("Failed to execute query: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Balance of %s: %d\n", *account, balance)
}

func runInfo(f *globalFlags) {
	flagset := flag.NewFlagSet("info", flag.ExitOnError)
	account := flagset.String("account", "", "account ID in shard.realm.num format")
	maxPayment := flagset.Uint64("max-payment", 0, "maximum query payment (0 for no cap)")
	if err := flagset.Parse(f.flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if *account == "" {
		fmt.Printf("You must specify -account\n")
		os.Exit(1)
	}
	client := createClient(f)
	defer client.Close()
	q := query.NewAccountInfoQuery()
	q.SetAccountID(parseAccountArg(*account, "account ID"))
	if *maxPayment > 0 {
		q.SetMaxQueryPayment(*maxPayment)
	}
	info, err := q.Execute(context.Background(), client)
	if err != nil {
		fmt.Printf("Failed to execute query: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Account:    %s\n", info.AccountID)
	fmt.Printf("Balance:    %d\n", info.Balance)
	fmt.Printf("Public key: %x\n", info.PublicKey)
	fmt.Printf("Deleted:    %t\n", info.Deleted)
}
