// Package web is the panelhouse application: public comic and blog pages, the
// device-aware comic reader, authentication screens, the admin back-office and
// the operational endpoints. All content comes from the content API; App only
// renders, negotiates reader formats and forwards admin mutations.
//
//	app, err := web.New(web.Deps{Config: cfg, Content: api, Assets: store, Cookies: cookies, Logger: log})
//	if err != nil {
//		return err
//	}
//	srv.Run(ctx, app.Handler())
package web
