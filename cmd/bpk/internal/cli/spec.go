package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/somfy-oss/bpk"
	"github.com/somfy-oss/bpk/internal/compress"
)

// partSpec describes one -p/--part flag: the partition to create from
// or extract to path, along with its type, hardware id, and
// compression codec. Mirrors mkbpk.c's "type:file" spec, extended
// with the optional hw_id and codec fields this wire format's
// per-partition hardware tagging and compression adapters add.
type partSpec struct {
	Type  uint32
	HwID  uint32
	Codec compress.Codec
	Path  string
}

// parsePartSpec parses one "type[:hw_id][:codec]:path" argument. The
// argument is split on every ':'; the first field is the type and the
// last is always the path, so a path cannot itself contain ':'. Each
// field in between is recognized by its content rather than its
// position: a codec name sets the codec, anything else must parse as
// a hw_id (decimal or 0x-prefixed hex), and empty fields are skipped.
func parsePartSpec(arg string) (partSpec, error) {
	fields := strings.Split(arg, ":")
	if len(fields) < 2 {
		return partSpec{}, fmt.Errorf("malformed partition spec %q (want type[:hw_id][:codec]:path)", arg)
	}

	typeStr := fields[0]
	path := fields[len(fields)-1]
	middle := fields[1 : len(fields)-1]

	typ, err := parseType(typeStr)
	if err != nil {
		return partSpec{}, fmt.Errorf("partition spec %q: %w", arg, err)
	}

	spec := partSpec{Type: typ, Path: path}

	for _, field := range middle {
		if field == "" {
			continue
		}
		if codec, err := compress.ParseCodec(field); err == nil {
			spec.Codec = codec
			continue
		}
		hwID, err := parseHwID(field)
		if err != nil {
			return partSpec{}, fmt.Errorf("partition spec %q: unrecognized field %q", arg, field)
		}
		spec.HwID = hwID
	}

	if path == "" {
		return partSpec{}, fmt.Errorf("partition spec %q: empty path", arg)
	}
	return spec, nil
}

func parseHwID(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// wellKnownTypes mirrors mkbpk.c's bpk_types_str table, extended with
// the hardware-id-era type tags this format adds beyond the kept
// revision of mkbpk.c.
var wellKnownTypes = map[string]uint32{
	"version":       bpk.TypeFirmwareVersion,
	"pboot":         bpk.TypeBootloader,
	"pboot_version": bpk.TypeBootloaderVersion,
	"pker":          bpk.TypeKernel,
	"prootfs":       bpk.TypeRootFilesystem,
	"description":   bpk.TypeDescription,
}

func parseType(s string) (uint32, error) {
	if t, ok := wellKnownTypes[s]; ok {
		return t, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown partition type %q", s)
	}
	return uint32(n), nil
}

// parsePartSpecs parses every -p argument, aggregating every failure
// with go-multierror instead of stopping at the first bad spec, so a
// batch create/extract run reports all of its mistakes at once.
func parsePartSpecs(args []string) ([]partSpec, error) {
	var specs []partSpec
	var errs *multierror.Error
	for _, arg := range args {
		spec, err := parsePartSpec(arg)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	if errs != nil {
		return nil, errs.ErrorOrNil()
	}
	return specs, nil
}
