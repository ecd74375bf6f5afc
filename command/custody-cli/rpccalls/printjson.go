// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"
	"fmt"
)

// output an JSON block to the verbose handle
func (c *Client) printJson(title string, message interface{}) {
	if !c.verbose {
		return
	}
	buffer, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(c.handle, "%s: marshal error: %s\n", title, err)
		return
	}
	if "" == title {
		fmt.Fprintf(c.handle, "%s\n", buffer)
	} else {
		fmt.Fprintf(c.handle, "%s:\n%s\n", title, buffer)
	}
}
