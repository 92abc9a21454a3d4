// Command jsonptr streams the direct children of the JSON container a
// pointer designates and prints each as "key: value" or "index: value".
//
// Usage: jsonptr --pointer POINTER [--compact] [FILE]
//
// If FILE is omitted, standard input is read.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pborman/getopt"

	"github.com/gibsn/jsonptr"
)

func main() {
	var ptrStr string
	var compact bool
	var bufSize int
	var help bool

	getopt.StringVarLong(&ptrStr, "pointer", 'p', "JSON Pointer (RFC 6901) of the container to iterate", "POINTER")
	getopt.BoolVarLong(&compact, "compact", 'c', "print each value as compact JSON instead of Go syntax")
	getopt.IntVarLong(&bufSize, "bufsize", 0, "lexer read buffer size, for debugging chunk handling", "BYTES")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE]")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		os.Exit(0)
	}

	args := getopt.Args()

	var opts []jsonptr.Option
	if bufSize > 0 {
		opts = append(opts, jsonptr.WithBufSize(bufSize))
	}

	var it *jsonptr.Iterator
	var err error

	if len(args) == 0 {
		it, err = jsonptr.OpenReader(context.Background(), os.Stdin, ptrStr, opts...)
	} else {
		it, err = jsonptr.OpenFile(context.Background(), args[0], ptrStr, opts...)
	}
	if err != nil {
		log.Fatalf("fatal: could not open %q: %v", ptrStr, err)
	}
	defer it.Close()

	for {
		pair, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("fatal: could not iterate %q: %v", ptrStr, err)
		}

		if compact {
			b, err := json.Marshal(pair.Value)
			if err != nil {
				log.Fatalf("fatal: could not marshal value for key %v: %v", pair.Key, err)
			}
			fmt.Printf("%v: %s\n", pair.Key, b)
		} else {
			fmt.Printf("%v: %#v\n", pair.Key, pair.Value)
		}
	}
}
