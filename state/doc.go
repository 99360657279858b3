// Package state holds application state shared across a process: a registry
// of named slots with one-time default initialization, and Store, which owns
// the "user", "session" and "post" slots and persists the session to a
// core.Storage backend.
//
// Initialization and mutation are separate operations. Use registers a slot
// (running its default factory exactly once per registry); setters look the
// slot up and assign on every call.
//
//	st := state.New(storage.NewFileStore(dir))
//	if err := st.SetSession(ctx, core.SessionData{"jwt": jwt, "user": user}); err != nil {
//	    return err
//	}
//	fmt.Println(st.GetUser()["username"])
package state
