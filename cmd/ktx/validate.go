package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktx2tools/ktx2go/pkg/container"
	"github.com/ktx2tools/ktx2go/pkg/issue"
	"github.com/ktx2tools/ktx2go/pkg/ktxio"
	"github.com/ktx2tools/ktx2go/pkg/supercompression"
	"github.com/ktx2tools/ktx2go/pkg/texture"
	"github.com/ktx2tools/ktx2go/pkg/validator"
	"github.com/ktx2tools/ktx2go/pkg/validator/report"
)

var (
	validateFormat           string
	validateGLTFBasisU       bool
	validateWarningsAsErrors bool
)

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text, json, or mini-json")
	validateCmd.Flags().BoolVarP(&validateGLTFBasisU, "gltf-basisu", "g", false, "also check the KHR_texture_basisu compatibility profile")
	validateCmd.Flags().BoolVarP(&validateWarningsAsErrors, "warnings-as-errors", "e", false, "treat warnings as errors for the exit code and final severity")
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a KTX2 file against the conformance rules",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

// exitCodeError carries the exit code a validation run decided on
// without cobra printing an extra "Error:" line for the file case.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return "" }

// validateSGDAndTranscode covers the two pipeline stages that need a
// fully decoded header/level-geometry rather than the structural byte
// ranges Validate works from: BasisLZ global-data layout, and the
// create-and-transcode smoke test.
func validateSGDAndTranscode(data []byte) []issue.Issue {
	var issues []issue.Issue

	if err := container.CheckIdentifier(data); err != nil {
		return nil
	}
	hdr, err := container.ReadHeader(bytes.NewReader(data[12:]))
	if err != nil {
		return nil
	}

	if supercompression.Scheme(hdr.SupercompressionScheme) == supercompression.SchemeBasisLZ {
		if hdr.Index.SGDByteLength == 0 {
			issues = append(issues, issue.IssueSGDMissing)
		} else {
			end := hdr.Index.SGDByteOffset + hdr.Index.SGDByteLength
			if end <= uint64(len(data)) {
				imageCount := totalImageCount(hdr)
				_, _, sgdIssues := supercompression.ParseBasisLzSGD(data[hdr.Index.SGDByteOffset:end], imageCount)
				issues = append(issues, sgdIssues...)
			}
		}
	}

	if _, err := texture.Decode(data); err != nil {
		issues = append(issues, issue.IssueCreateFailure.Withf("%v", err))
	}

	return issues
}

// totalImageCount sums the per-level (layer * face * depth-slice) image
// count the BasisLZ global header's slice descriptors are indexed by.
func totalImageCount(hdr *container.Header) uint32 {
	layerCount := hdr.LayerCount
	if layerCount == 0 {
		layerCount = 1
	}
	faceCount := hdr.FaceCount
	if faceCount == 0 {
		faceCount = 1
	}
	var total uint32
	for level := uint32(0); level < container.EffectiveLevelCount(hdr.LevelCount); level++ {
		depth := hdr.PixelDepth >> level
		if depth == 0 {
			depth = 1
		}
		total += layerCount * faceCount * depth
	}
	return total
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if path == "-" {
		return fmt.Errorf("ktx validate: reading from stdin is not supported, pass a file path")
	}

	stream, err := ktxio.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("ktx validate: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("ktx validate: read %s: %w", path, err)
	}

	format := report.Format(validateFormat)
	switch format {
	case report.FormatText, report.FormatJSON, report.FormatMiniJSON:
	default:
		return fmt.Errorf("ktx validate: unrecognized --format %q", validateFormat)
	}

	rep := validator.Validate(data, validator.Options{
		WarningsAsErrors: validateWarningsAsErrors,
		GLTFBasisU:       validateGLTFBasisU,
	})

	rep.Issues = append(rep.Issues, validateSGDAndTranscode(data)...)
	if validateWarningsAsErrors {
		for i := range rep.Issues {
			if rep.Issues[i].Severity == issue.SeverityWarning {
				rep.Issues[i].Severity = issue.SeverityError
			}
		}
	}

	if err := report.Write(os.Stdout, rep, format); err != nil {
		return fmt.Errorf("ktx validate: %w", err)
	}

	if !rep.Valid() {
		return &exitCodeError{code: 2}
	}
	return nil
}
