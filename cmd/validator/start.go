package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/quiltchain/quilt-go/consensus"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/committees"
	"github.com/quiltchain/quilt-go/consensus/hotstuff/pacemaker/timeout"
	"github.com/quiltchain/quilt-go/crypto/bls"
	"github.com/quiltchain/quilt-go/model/quilt"
	"github.com/quiltchain/quilt-go/module/builder"
	"github.com/quiltchain/quilt-go/module/local"
	"github.com/quiltchain/quilt-go/module/mempool/stdmap"
	"github.com/quiltchain/quilt-go/module/metrics"
	"github.com/quiltchain/quilt-go/network/mocknet"
	bstorage "github.com/quiltchain/quilt-go/storage/badger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the validator node",
	RunE:  runStart,
}

func init() {
	defineStartFlags(startCmd.Flags())
}

func defineStartFlags(flags *pflag.FlagSet) {
	flags.String("data-dir", "data", "directory for the node's databases")
	flags.String("shard-id", "shard-main", "shard this validator participates in")
	flags.String("key-file", "validator-key.json", "path of the validator signing key")
	flags.String("committee-file", "committee.json", "path of the committee membership file")
	flags.Duration("min-timeout", time.Second, "minimum view timeout")
	flags.Duration("max-timeout", time.Minute, "maximum view timeout")
	flags.Float64("timeout-factor", 1.5, "multiplicative view timeout backoff factor")
	flags.String("metrics-addr", ":9090", "listen address of the metrics endpoint (empty to disable)")
	flags.Uint("max-payload-size", 500, "maximum number of commands per block")
	flags.Bool("disable-empty-blocks", false, "do not propose blocks without commands")
	flags.Uint("mempool-limit", 10000, "maximum number of pending commands")
	flags.Int("dev", 0, "run an in-process development committee of the given size instead of a single node")
	for _, name := range []string{
		"data-dir", "shard-id", "key-file", "committee-file",
		"min-timeout", "max-timeout", "timeout-factor", "metrics-addr",
		"max-payload-size", "disable-empty-blocks", "mempool-limit", "dev",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// committeeMember is one entry of the committee membership file.
type committeeMember struct {
	NodeID    quilt.Identifier `json:"node_id"`
	Address   string           `json:"address"`
	Weight    uint64           `json:"weight"`
	PublicKey string           `json:"public_key"`
}

func runStart(cmd *cobra.Command, args []string) error {
	log := buildLogger()

	timeoutConfig, err := timeout.NewConfig(
		viper.GetDuration("min-timeout"),
		viper.GetDuration("max-timeout"),
		viper.GetFloat64("timeout-factor"),
		timeout.DefaultConfig().HappyPathMaxRoundFailures,
	)
	if err != nil {
		return fmt.Errorf("invalid timeout configuration: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewConsensusCollector(registry)
	stopMetrics := serveMetrics(log, registry, viper.GetString("metrics-addr"))
	defer stopMetrics()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if devSize := viper.GetInt("dev"); devSize > 0 {
		return runDevCommittee(ctx, log, devSize, timeoutConfig, collector)
	}
	return runNode(ctx, log, timeoutConfig, collector)
}

// runNode starts a single validator from its key and committee files.
func runNode(ctx context.Context, log zerolog.Logger, timeoutConfig timeout.Config, collector *metrics.ConsensusCollector) error {

	nodeID, sk, err := loadKeyFile(viper.GetString("key-file"))
	if err != nil {
		return err
	}
	identities, err := loadCommitteeFile(viper.GetString("committee-file"))
	if err != nil {
		return err
	}
	me, err := local.New(nodeID, sk)
	if err != nil {
		return fmt.Errorf("could not create local identity: %w", err)
	}
	committee, err := committees.NewStatic(1, nodeID, identities)
	if err != nil {
		return fmt.Errorf("could not create committee: %w", err)
	}

	shardID := quilt.ShardID(viper.GetString("shard-id"))
	db, err := openDB(viper.GetString("data-dir"))
	if err != nil {
		return err
	}
	defer db.Close()

	blocks := bstorage.NewBlocks(db)
	_, err = consensus.Bootstrap(blocks, shardID)
	if err != nil {
		return fmt.Errorf("could not bootstrap block store: %w", err)
	}

	// the in-process bus only connects local participants; committee peers
	// become reachable once a wire transport registers on the same network
	// boundary
	net := mocknet.NewNetwork(log)

	participant, err := consensus.NewParticipant(
		log,
		db,
		me,
		committee,
		blocks,
		stdmap.NewCommands(viper.GetUint("mempool-limit")),
		&logReceiver{log: log},
		net,
		consensus.WithTimeoutConfig(timeoutConfig),
		consensus.WithMetrics(collector),
		consensus.WithBuilderOptions(builderOptions()...),
	)
	if err != nil {
		return fmt.Errorf("could not create participant: %w", err)
	}

	log.Info().
		Str("node_id", nodeID.String()).
		Str("shard_id", string(shardID)).
		Int("committee_size", len(identities)).
		Msg("starting validator")

	participant.Start(ctx)
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		<-participant.Done()
	case <-participant.Done():
	}
	return participant.Err()
}

// runDevCommittee spins up a whole committee of validators inside this
// process, connected through the in-memory bus. Commands are injected
// periodically so the chain has content. Intended for local development.
func runDevCommittee(ctx context.Context, log zerolog.Logger, size int, timeoutConfig timeout.Config, collector *metrics.ConsensusCollector) error {

	shardID := quilt.ShardID(viper.GetString("shard-id"))
	dataDir := viper.GetString("data-dir")
	net := mocknet.NewNetwork(log)

	keys := make(map[quilt.Identifier]*bls.PrivateKey, size)
	identities := make(quilt.IdentityList, 0, size)
	for i := 0; i < size; i++ {
		sk, err := bls.GenerateKey(nil)
		if err != nil {
			return fmt.Errorf("could not generate dev key: %w", err)
		}
		pub, err := sk.PublicKey()
		if err != nil {
			return fmt.Errorf("could not derive dev public key: %w", err)
		}
		nodeID := quilt.HashToID(pub)
		keys[nodeID] = sk
		identities = append(identities, &quilt.Identity{
			NodeID:  nodeID,
			Address: fmt.Sprintf("dev-%d.local:0", i),
			Weight:  1,
			PubKey:  pub,
		})
	}
	identities = identities.Sort()

	participants := make([]*consensus.Participant, 0, size)
	pools := make([]*stdmap.Commands, 0, size)
	for i, identity := range identities {
		db, err := openDB(filepath.Join(dataDir, fmt.Sprintf("node-%d", i)))
		if err != nil {
			return err
		}
		defer db.Close()

		blocks := bstorage.NewBlocks(db)
		_, err = consensus.Bootstrap(blocks, shardID)
		if err != nil {
			return fmt.Errorf("could not bootstrap block store: %w", err)
		}
		me, err := local.New(identity.NodeID, keys[identity.NodeID])
		if err != nil {
			return fmt.Errorf("could not create local identity: %w", err)
		}
		committee, err := committees.NewStatic(1, identity.NodeID, identities)
		if err != nil {
			return fmt.Errorf("could not create committee: %w", err)
		}

		pool := stdmap.NewCommands(viper.GetUint("mempool-limit"))
		options := []consensus.Option{
			consensus.WithTimeoutConfig(timeoutConfig),
			consensus.WithBuilderOptions(builderOptions()...),
		}
		// the first node reports the committee's metrics
		if i == 0 {
			options = append(options, consensus.WithMetrics(collector))
		}

		participant, err := consensus.NewParticipant(
			log.With().Int("dev_node", i).Logger(),
			db,
			me,
			committee,
			blocks,
			pool,
			&logReceiver{log: log.With().Int("dev_node", i).Logger()},
			net,
			options...,
		)
		if err != nil {
			return fmt.Errorf("could not create dev participant %d: %w", i, err)
		}
		participants = append(participants, participant)
		pools = append(pools, pool)
	}

	log.Info().Int("committee_size", size).Str("shard_id", string(shardID)).Msg("starting development committee")
	for _, participant := range participants {
		participant.Start(ctx)
	}
	go injectCommands(ctx, pools)

	<-ctx.Done()
	log.Info().Msg("shutting down")
	for _, participant := range participants {
		<-participant.Done()
	}
	return nil
}

// injectCommands feeds a steady trickle of commands into every mempool.
func injectCommands(ctx context.Context, pools []*stdmap.Commands) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	seq := uint64(0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			seq++
			cmd := quilt.Command{Script: []byte(fmt.Sprintf("dev-command-%d", seq))}
			for _, pool := range pools {
				pool.Add(cmd)
			}
		}
	}
}

func loadCommitteeFile(path string) (quilt.IdentityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read committee file: %w", err)
	}
	var members []committeeMember
	err = json.Unmarshal(data, &members)
	if err != nil {
		return nil, fmt.Errorf("could not parse committee file: %w", err)
	}
	identities := make(quilt.IdentityList, 0, len(members))
	for _, member := range members {
		pub, err := hex.DecodeString(member.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("could not decode public key of %s: %w", member.NodeID, err)
		}
		identities = append(identities, &quilt.Identity{
			NodeID:  member.NodeID,
			Address: member.Address,
			Weight:  member.Weight,
			PubKey:  pub,
		})
	}
	return identities.Sort(), nil
}

func openDB(dir string) (*badger.DB, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	return db, nil
}

// serveMetrics exposes the Prometheus registry over HTTP. The returned
// function shuts the server down.
func serveMetrics(log zerolog.Logger, registry *prometheus.Registry, addr string) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}

// logReceiver stands in for the execution layer: committed blocks are
// acknowledged in the log and dropped.
type logReceiver struct {
	log zerolog.Logger
}

func (r *logReceiver) ApplyBlock(block *quilt.Block) error {
	blockID := block.ID()
	r.log.Info().
		Hex("block_id", blockID[:]).
		Uint64("height", block.Header.Height).
		Int("commands", len(block.Payload.Commands)).
		Msg("block applied")
	return nil
}

func builderOptions() []builder.Option {
	options := []builder.Option{
		builder.WithMaxPayloadSize(viper.GetUint("max-payload-size")),
	}
	if viper.GetBool("disable-empty-blocks") {
		options = append(options, builder.WithEmptyBlocksDisabled())
	}
	return options
}
