// Command lightwallet is a demo driver for the light-wallet
// coordination core: it wires a Node to an in-memory ClientPort,
// exposes status and send subcommands, and
// prints results with a tabular writer, following cmd/geth's
// urfave/cli-based command layout.
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/dirmansebastian/lightwallet"
	"github.com/dirmansebastian/lightwallet/internal/config"
	"github.com/dirmansebastian/lightwallet/walletevent"
)

var (
	configPathFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML node configuration file",
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "recipient address (hex)",
	}
	amountFlag = &cli.StringFlag{
		Name:  "amount",
		Usage: "amount in wei (decimal)",
		Value: "0",
	}
)

func loadNodeConfig(path string) config.Config {
	if path == "" {
		return config.Config{
			Network: "demo",
			ChainID: 1337,
			Account: "0x00000000000000000000000000000000000001",
			BaseDir: "./lightwallet-data",
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

func buildNode(cfg config.Config) *lightwallet.Node {
	account := common.HexToAddress(cfg.Account)
	return lightwallet.NewNode(cfg.Network, cfg.ChainIDBig(), account, lightwallet.TypeJsonRpc)
}

// connectAndWait connects n to an in-memory client, prints every
// announced event tagged with a per-run correlation id, and blocks
// for poll so the worker's first cycle can be answered and the demo
// has something to show.
func connectAndWait(n *lightwallet.Node, poll time.Duration) *memClient {
	runID := uuid.New().String()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"run", "category", "code", "status", "description"})

	listener := &lightwallet.Listener{
		OnWallet: func(ev walletevent.Event) {
			table.Append([]string{runID[:8], ev.Category.String(), fmt.Sprint(ev.Code), ev.Status.String(), ev.Description})
		},
		OnTransaction: func(ev walletevent.Event) {
			table.Append([]string{runID[:8], ev.Category.String(), fmt.Sprint(ev.Code), ev.Status.String(), ev.Description})
		},
		OnBlock: func(ev walletevent.Event) {
			table.Append([]string{runID[:8], ev.Category.String(), fmt.Sprint(ev.Code), ev.Status.String(), ev.Description})
		},
	}
	n.AddListener(listener)

	client := newMemClient()
	client.fund(n.Account(), big.NewInt(5_000_000_000_000_000_000))
	n.Connect(client)

	time.Sleep(poll)
	table.Render()
	return client
}

func main() {
	app := &cli.App{
		Name:  "lightwallet",
		Usage: "drive a light-wallet coordination Node against an in-memory demo chain",
		Flags: []cli.Flag{configPathFlag},
		Commands: []*cli.Command{
			statusCommand,
			sendCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// demoPoll is the interval the demo waits after Connect before
// rendering observed events — short enough for an interactive CLI,
// unrelated to lightwallet.PollInterval which governs the Node's own
// background worker.
const demoPoll = 50 * time.Millisecond

var statusCommand = &cli.Command{
	Name:  "status",
	Usage: "connect a Node, run one poll cycle against the in-memory demo chain, and print observed events",
	Action: func(c *cli.Context) error {
		cfg := loadNodeConfig(c.String("config"))
		n := buildNode(cfg)
		connectAndWait(n, demoPoll)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return n.Close(ctx)
	},
}

var sendCommand = &cli.Command{
	Name:  "send",
	Usage: "create a transaction from the demo account (signing is left to keyprovider.DeriveFromMnemonic)",
	Flags: []cli.Flag{toFlag, amountFlag},
	Action: func(c *cli.Context) error {
		cfg := loadNodeConfig(c.String("config"))
		n := buildNode(cfg)
		connectAndWait(n, demoPoll)

		to := common.HexToAddress(c.String("to"))
		amount, ok := new(big.Int).SetString(c.String("amount"), 10)
		if !ok {
			return fmt.Errorf("lightwallet: invalid --amount %q", c.String("amount"))
		}

		wid := n.GetWallet()
		tid, err := n.WalletCreateTransaction(wid, to, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "created transaction %d (submit requires a signer: see keyprovider.DeriveFromMnemonic)\n", tid)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return n.Close(ctx)
	},
}
