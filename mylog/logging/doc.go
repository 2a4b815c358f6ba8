// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*

The demo programs emit the following kinds of output:

1. Log records: everything written through logrus, either directly or through a ratelog call site.
   Records carry the program name and a per-process run id.
2. Console lines: human-readable lines written straight to stdout, with no severity or header.


Log records have the following sinks:

1. Primary sink: stderr by default, or the file given by --log-file (opened for append, never rotated)
2. Stderr mirror: a copy of every record on stderr when --alsologtostderr is set and the primary sink is a file
3. Collector: an in-memory buffer of recent records, drained by the debug server's /logs endpoint

Init configures all of the above exactly once per process. The glog formatter renders records as

	Lmmdd hh:mm:ss.uuuuuu threadid file:line] msg key=value ...

where threadid is the process id.

*/
package logging
