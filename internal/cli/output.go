package cli

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arborlab/phylograph/pkg/httputil"
	"github.com/arborlab/phylograph/pkg/pipeline"
)

// stdinPath is the input argument that selects standard input.
const stdinPath = "-"

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// An empty path or "-" returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdinPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// outputBase derives a base output path (no extension) from the input
// argument. URLs use the last path segment, stdin falls back to "graph",
// and file paths drop their extension.
func outputBase(input string) string {
	if input == stdinPath {
		return "graph"
	}
	if httputil.IsURL(input) {
		base := input
		if u, err := url.Parse(input); err == nil && u.Path != "" {
			base = path.Base(u.Path)
		}
		return strings.TrimSuffix(base, path.Ext(base))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// artifactWriteParams bundles the inputs of writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	nodes     int
	branches  int
	cacheHit  bool
}

// writeArtifacts writes rendered artifacts to their output files and prints
// the result summary.
//
// With a single format, the output flag names the file directly ("-" or
// empty writes to stdout for text formats). With multiple formats, the
// output flag is treated as a base path and each artifact is written to
// base.<format>.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 {
		format := p.formats[0]
		outputPath := p.output
		if outputPath == "" {
			outputPath = outputBase(p.input) + "." + format
		}

		if err := writeArtifact(p.artifacts[format], outputPath); err != nil {
			return err
		}

		printSuccess("Render complete")
		if outputPath != stdinPath {
			printFile(outputPath)
			printStats(p.nodes, p.branches, p.cacheHit)
		}
		return nil
	}

	base := p.output
	if base == "" || base == stdinPath {
		base = outputBase(p.input)
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}

	printSuccess("Render complete")
	for _, format := range p.formats {
		outputPath := base + "." + format
		if err := writeArtifact(p.artifacts[format], outputPath); err != nil {
			return err
		}
		printFile(outputPath)
	}
	printStats(p.nodes, p.branches, p.cacheHit)
	return nil
}

func writeArtifact(data []byte, outputPath string) error {
	out, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("open output %s: %w", outputPath, err)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

// readStdin reads the whole of standard input, for "-" input arguments.
func readStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
