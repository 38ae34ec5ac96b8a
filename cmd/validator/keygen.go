package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quiltchain/quilt-go/crypto/bls"
	"github.com/quiltchain/quilt-go/model/quilt"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a validator signing key",
	Long:  "Generates a fresh BLS signing key and writes it to a key file. The node ID is derived from the public key.",
	RunE:  runKeygen,
}

func init() {
	keygenCmd.Flags().String("out", "validator-key.json", "path of the key file to write")
	_ = viper.BindPFlag("out", keygenCmd.Flags().Lookup("out"))
}

// keyFile is the on-disk format of a validator signing key.
type keyFile struct {
	NodeID     quilt.Identifier `json:"node_id"`
	PrivateKey string           `json:"private_key"`
	PublicKey  string           `json:"public_key"`
}

func runKeygen(cmd *cobra.Command, args []string) error {

	sk, err := bls.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("could not generate key: %w", err)
	}
	priv, err := sk.Encode()
	if err != nil {
		return fmt.Errorf("could not encode private key: %w", err)
	}
	pub, err := sk.PublicKey()
	if err != nil {
		return fmt.Errorf("could not derive public key: %w", err)
	}

	file := keyFile{
		NodeID:     quilt.HashToID(pub),
		PrivateKey: hex.EncodeToString(priv),
		PublicKey:  hex.EncodeToString(pub),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode key file: %w", err)
	}

	out := viper.GetString("out")
	err = os.WriteFile(out, data, 0600)
	if err != nil {
		return fmt.Errorf("could not write key file: %w", err)
	}

	fmt.Printf("wrote %s\nnode ID: %s\n", out, file.NodeID)
	return nil
}

// loadKeyFile reads a key file and reconstructs the signing key.
func loadKeyFile(path string) (quilt.Identifier, *bls.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return quilt.ZeroID, nil, fmt.Errorf("could not read key file: %w", err)
	}
	var file keyFile
	err = json.Unmarshal(data, &file)
	if err != nil {
		return quilt.ZeroID, nil, fmt.Errorf("could not parse key file: %w", err)
	}
	priv, err := hex.DecodeString(file.PrivateKey)
	if err != nil {
		return quilt.ZeroID, nil, fmt.Errorf("could not decode private key: %w", err)
	}
	sk, err := bls.DecodePrivateKey(priv)
	if err != nil {
		return quilt.ZeroID, nil, fmt.Errorf("could not reconstruct private key: %w", err)
	}
	return file.NodeID, sk, nil
}
