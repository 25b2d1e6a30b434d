// Package pkg provides the core libraries for panelprep PCB panelization.
//
// # Overview
//
// Panelprep turns a single-board gerber export into a framed production panel
// description. The pkg directory is organized by pipeline stage:
//
//  1. [config] - Settings file loading and validation
//  2. [archive] - Zip extraction into a working directory
//  3. [gerber] - Board file role resolution and profile measurement
//  4. [panel] - Panel geometry, placements, mousebites, and limit warnings
//  5. [gerberset] - .gerberset descriptor and report output
//  6. [pipeline] - Orchestration (extract → resolve → calculate → write)
//
// # Architecture
//
// The typical data flow through panelprep:
//
//	Zipped gerber export
//	         ↓
//	    [archive] package (extract into a working directory)
//	         ↓
//	    [gerber] package (resolve roles, measure the board outline)
//	         ↓
//	    [panel] package (repeat into a framed panel)
//	         ↓
//	    [gerberset] package (descriptor + report output)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(config.Default(), prompter, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{ArchivePath: "board.zip"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Outputs.GerbersetPath)
//
// The supporting packages [errors] and [buildinfo] provide structured error
// codes and build-time version information.
package pkg
