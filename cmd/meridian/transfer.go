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
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/meridian-ledger/go-meridian/transaction"
)

func runTransfer(f *globalFlags) {
	flagset := flag.NewFlagSet("transfer", flag.ExitOnError)
	to := flagset.String("to", "", "recipient account ID in shard.realm.num format")
	amount := flagset.Int64("amount", 0, "amount to transfer")
	if err := flagset.Parse(f.flagset.Args()[1:]); err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if *to == "" || *amount <= 0 {
		fmt.Printf("You must specify -to and a positive -amount\n")
		os.Exit(1)
	}
	client := createClient(f)
	defer client.Close()
	recipient := parseAccountArg(*to, "recipient account ID")
	tx := transaction.NewTransferTransaction()
	if err := tx.AddTransfer(client.OperatorAccountID(), -*amount); err != nil {
		fmt.Printf("Failed to build transfer: %s\n", err)
		os.Exit(1)
	}
	if err := tx.AddTransfer(recipient, *amount); err != nil {
		fmt.Printf("Failed to build transfer: %s\n", err)
		os.Exit(1)
	}
	receipt, err := tx.Execute(context.Background(), client)
	if err != nil {
		fmt.Printf("Failed to execute transfer: %s\n", err)
		os.Exit(1)
	}
	hash, err := tx.Hash()
	if err != nil {
		fmt.Printf("Failed to hash transaction: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf(
		"Transferred %d to %s (transaction %s, status %s, hash %s)\n",
		*amount,
		recipient,
		tx.TransactionID(),
		receipt.Status,
		hex.EncodeToString(hash),
	)
}
