// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr_test

import (
	"fmt"
	"log"

	"github.com/unixdj/qrcore"
	"github.com/unixdj/qrcore/coding"
)

func ExampleEncode() {
	c, err := qr.Encode("HELLO WORLD", qr.M, nil)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Mode, c.Version, c.Level, len(c.Codewords))
	fmt.Printf("% x\n", c.Data)
	// Output:
	// alphanumeric 1 M 26
	// 20 5b 0b 78 d1 72 dc 4d 43 40 ec 11 ec 11 ec 11
}

func ExampleEncode_options() {
	c, err := qr.Encode("01234567", qr.Q, &qr.Options{
		Mode:    qr.Byte,
		Version: 2,
	})
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Println(c.Mode, c.Version, len(c.Data), len(c.Codewords))
	_, err = qr.Encode("01234567", qr.Q, &qr.Options{Version: coding.MaxVersion + 1})
	fmt.Println(err)
	// Output:
	// byte 2 22 44
	// qr: unsupported version 16 (want 1 to 15)
}
