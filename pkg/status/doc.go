/*
Package status turns a run's events into something people and tools can use.

	            +-------------+
	            |    Multi    |
	            |  (fan-out)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|Collector|   | Console |   | Logging |
	| (list)  |   | (UI/UX) |   |(zerolog)|
	+---------+   +---------+   +---------+

🎯 Purpose:
- Collector keeps the list of matched files and the latest percentage
- Console prints matches, a progress bar and a summary
- Logging writes one structured event per file and per outcome
- Report turns a finished run into a JSON or YAML document

Every type here implements operation.Sink and is driven by the run's worker
goroutine. Collector may be read from other goroutines while the run is going.
*/
package status
