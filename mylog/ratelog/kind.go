// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import "fmt"

// Kind is the policy a call site was created with.
type Kind int

const (
	KindIf Kind = iota
	KindEveryN
	KindFirstN
	KindEveryT
	KindIfEveryN
)

var kindNames = map[Kind]string{
	KindIf:       "if",
	KindEveryN:   "every_n",
	KindFirstN:   "first_n",
	KindEveryT:   "every_t",
	KindIfEveryN: "if_every_n",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
