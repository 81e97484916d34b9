// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	var compile string
	var save bool
	var output string
	var verbose bool

	log.SetFlags(0)
	log.SetPrefix("ls8: ")

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.BoolVar(&save, "s", false, "Save compiled image, do not execute")
	flag.StringVar(&output, "o", "-", "Image output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	var prog *cpu.Program

	if len(compile) != 0 {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		// Compile a new program.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("usage: %v [-v] program.ls8", os.Args[0])
		}

		image := flag.Arg(0)
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		loader := &cpu.ImageLoader{Verbose: verbose}
		prog, err = loader.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	if save {
		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err := prog.WriteImage(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Tape.Output = os.Stdout
	emu.Diagnostic = os.Stderr

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil && verbose {
		log.Print(err)
	}

	os.Exit(emulator.ExitStatus(err))
}
