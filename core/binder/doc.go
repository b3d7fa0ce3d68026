// Package binder maps request data onto tagged structs.
//
//	type ComicForm struct {
//		Title     string   `form:"title"`
//		Body      string   `form:"body,raw"`
//		Tags      []string `form:"tags"`
//		Published bool     `form:"published"`
//	}
//
//	var f ComicForm
//	if err := binder.Form()(r, &f); err != nil {
//		return response.Error(response.ErrBadRequest.WithError(err))
//	}
//
// String values are stripped of control characters and line breaks unless the
// tag carries the raw option. Slices accept repeated keys and comma lists.
package binder
