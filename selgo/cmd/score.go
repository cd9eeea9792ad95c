package cmd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/zeroselector/selgo/alphabet"
	"github.com/ethereum-optimism/zeroselector/selgo/selector"
)

// suffixOrdinal recovers the width and ordinal of a searched suffix, if sig looks like one.
func suffixOrdinal(sig string) (width int, ordinal uint64, ok bool) {
	parsed, err := selector.ParseSignature(sig)
	if err != nil {
		return 0, 0, false
	}
	i := strings.LastIndex(parsed.Name, selector.Separator)
	if i < 0 {
		return 0, 0, false
	}
	suffix := parsed.Name[i+len(selector.Separator):]
	ordinal, err = alphabet.Decode(suffix)
	if err != nil {
		return 0, 0, false
	}
	return len(suffix), ordinal, true
}

func Score(ctx *cli.Context) error {
	sigs := ctx.Args().Slice()
	if len(sigs) == 0 {
		return errors.New("expected at least one signature")
	}
	w := ctx.App.Writer
	for _, sig := range sigs {
		if _, err := selector.ParseSignature(sig); err != nil {
			return err
		}
		r := selector.Score(sig)
		var sel [4]byte
		binary.BigEndian.PutUint32(sel[:], r.Selector)
		line := fmt.Sprintf("%s\tzeros=%d\tleading=%d\t%s", hexutil.Encode(sel[:]), r.Zeros, r.Leading, r.Signature)
		if ctx.Bool(HashFlag.Name) {
			line += "\thash=" + crypto.Keccak256Hash([]byte(sig)).Hex()
		}
		if width, ordinal, ok := suffixOrdinal(sig); ok {
			line += fmt.Sprintf("\tpass=%d\tordinal=%d", width, ordinal)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

var ScoreCommand = &cli.Command{
	Name:        "score",
	Usage:       "Print the selector and zero-byte counts of signatures",
	Description: "Print the 4-byte selector, zero-byte counts and, for name_<suffix>(args) signatures, the search pass and ordinal of the suffix.",
	ArgsUsage:   "<signature> [signature...]",
	Action:      Score,
	Flags: []cli.Flag{
		HashFlag,
	},
}
