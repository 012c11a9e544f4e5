//  Copyright (c) 2025 the Symflow authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// main package implements statedump, a small debugging tool that decodes
// inference state captures saved by the engine and prints them in the
// human-readable dump format. Engines persist captures next to crash
// reports; this tool is how one reads them back.
package main

import (
	"encoding/gob"
	"flag"
	"fmt"
	"os"

	"github.com/symflow/nullcheck/inference"
)

var (
	_sep = flag.String("sep", "Nullability assumptions:", "separator line printed before the entries")
	_nl  = flag.String("nl", "\n", "line terminator")
)

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	var capture inference.Capture
	if err := gob.NewDecoder(f).Decode(&capture); err != nil {
		return fmt.Errorf("decode capture %q: %w", path, err)
	}

	capture.Dump(os.Stdout, *_sep, *_nl)
	return nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <capture-file>\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
