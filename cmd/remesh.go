/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/tetremesh/driver"
	"github.com/notargets/tetremesh/mesh"
	"github.com/notargets/tetremesh/sizing"
)

var (
	inputPath         string
	outputPath        string
	targetSize        float64
	maxIterations     int
	protectBoundaries bool
	enableProfile     bool
)

var remeshCmd = &cobra.Command{
	Use:   "remesh",
	Short: "Run the adaptive remeshing loop over a tetrahedral mesh",
	Long: `remesh reads a tetrahedral mesh, runs the split/collapse/flip/smooth
local-remeshing loop until every finite edge falls within the sizing
bounds of --target-size (or the iteration budget runs out), and writes
the result back out.`,
	RunE: runRemesh,
}

func init() {
	rootCmd.AddCommand(remeshCmd)
	remeshCmd.Flags().StringVar(&inputPath, "in", "", "input mesh file (required)")
	remeshCmd.Flags().StringVar(&outputPath, "out", "", "output mesh file (required)")
	remeshCmd.Flags().Float64Var(&targetSize, "target-size", 1.0, "target edge length for the constant sizing field")
	remeshCmd.Flags().IntVar(&maxIterations, "max-iterations", 20, "maximum number of split/collapse/flip/smooth passes")
	remeshCmd.Flags().BoolVar(&protectBoundaries, "protect-boundaries", true, "forbid split/collapse from touching complex edges and facets")
	remeshCmd.Flags().BoolVar(&enableProfile, "profile", false, "write a CPU profile of the remeshing run")
	_ = remeshCmd.MarkFlagRequired("in")
	_ = remeshCmd.MarkFlagRequired("out")
}

func runRemesh(cmd *cobra.Command, args []string) error {
	if enableProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	tri, _, err := mesh.ReadMeshFile(inputPath)
	if err != nil {
		return fmt.Errorf("tetremesh: remesh: reading %s: %w", inputPath, err)
	}

	result, status, err := driver.Remesh(tri, driver.Config{
		Field:             sizing.Constant(targetSize),
		Selector:          driver.SelectAll,
		ProtectBoundaries: protectBoundaries,
		MaxIterations:     maxIterations,
	})
	if err != nil {
		return fmt.Errorf("tetremesh: remesh: %w", err)
	}

	if err := mesh.WriteMeshFile(result, outputPath); err != nil {
		return fmt.Errorf("tetremesh: remesh: writing %s: %w", outputPath, err)
	}

	adjacency := driver.BuildSubdomainAdjacency(result)
	report := map[string]interface{}{
		"status":            status.String(),
		"vertices":          result.NumVertices(),
		"cells":             result.NumCells(),
		"complexEdges":      result.NumComplexEdges(),
		"complexFacets":     result.NumComplexFacets(),
		"subdomainsCovered": len(adjacency.Subdomains()),
	}
	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("tetremesh: remesh: marshalling report: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}
