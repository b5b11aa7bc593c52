// Package genstack provides the core of a visual GenAI pipeline builder:
// a typed node/edge graph model, the editing operations that keep it
// consistent, floating per-node configuration windows with deterministic
// stacking, and the translation of a graph plus a user utterance into a
// request against an external execution service.
//
// The package is designed to sit behind a thin presentation layer.  A host
// application typically interacts with the high-level Service façade:
//
//	srv := genstack.New()
//	ed := srv.NewEditor("my stack")
//	queryID, _ := ed.AddNode(kind.UserQuery, model.Position{X: 40, Y: 80})
//	llmID, _ := ed.AddNode(kind.LlmEngine, model.Position{X: 280, Y: 80})
//	outID, _ := ed.AddNode(kind.Output, model.Position{X: 520, Y: 80})
//	_, _ = ed.Connect(queryID, llmID)
//	_, _ = ed.Connect(llmID, outID)
//	session := srv.NewChatSession(ed)
//	_ = session.Submit(ctx, "hello")
//
// Rendering, routing, document storage and the LLM execution itself live
// behind the HTTP boundary in service/executor and are not implemented here.
package genstack
