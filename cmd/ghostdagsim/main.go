// Command ghostdagsim launches a multi-node GHOSTDAG block-DAG mining
// simulation: N concurrent nodes mine and gossip blocks until the credit
// budget is spent and the dispatcher has quiesced, then prints every
// node's final DAG and blue-set summary.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/daglabs/ghostdagsim/logger"
	"github.com/daglabs/ghostdagsim/sim"
)

var log, _ = logger.Get(logger.SubsystemTags.SIM)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	nodeNames := make([]string, cfg.Nodes)
	for i := range nodeNames {
		nodeNames[i] = "node" + strconv.Itoa(i)
	}

	log.Infof("starting simulation: nodes=%d k=%d credits=%d", cfg.Nodes, cfg.K, cfg.Credits)

	controller := sim.NewController(nodeNames, cfg.Credits, cfg.K)
	controller.Run(time.Duration(cfg.GraceMillis) * time.Millisecond)

	for _, n := range controller.Nodes {
		fmt.Printf("=== %s (height=%d size_of_dag=%d mined=%d) ===\n",
			n.Name, n.Height(), n.SizeOfDag(), n.MinedBlocks())
		fmt.Println(n.String())
	}
}
