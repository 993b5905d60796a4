/*
Package operation runs batch find/replace jobs.

	+-------------+      +-------------+      +-------------+
	|   Engine    | ---> |   Worker    | ---> |    Sink     |
	| (Start/Cxl) |      | (per file)  |      | (progress)  |
	+-------------+      +------+------+      +-------------+
	                            |
	                     +------+------+
	                     | files/text  |
	                     +-------------+

🎯 Purpose:
- Enumerates the files a config.Job selects
- Counts literal matches in each file, rewrites them in replace mode
- Reports progress and per-file results to a Sink, in order
- Stops between files when cancellation is requested

🔄 Lifecycle:

	Idle -> Running -> Completed | Cancelled | Failed

An Engine accepts Start only while Idle. Each Start returns a Handle that
identifies that run; RequestCancel with a Handle that is not the active run
does nothing. The engine is Idle again by the time the Sink sees OnFinished.

⚡ Rules:
- Files are processed one at a time in enumeration order.
- A file that is being read or written always finishes; cancellation takes
  effect before the next file. Files already rewritten stay rewritten.
- An empty file list ends the run as Cancelled. Outcome.Total is zero in that
  case, which is the only thing telling it apart from a user cancel.
- The first read or write error ends the run as Failed. Nothing is retried.

🔍 Example:

	eng := operation.New()
	h, err := eng.Start(ctx, job, sink)
	if err != nil {
		return err
	}
	outcome := h.Wait()
*/
package operation
