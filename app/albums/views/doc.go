// Package views renders the Album Manager pages.
//
// Pages are html/template files embedded from templates/ and exposed as
// templ components through templ.FromGoHTML, so handlers render them with
// response.Templ. Every page is executed through the "layout" template and
// fills its "title" and "content" blocks.
package views
