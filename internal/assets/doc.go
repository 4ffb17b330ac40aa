// Package assets provides the layout skins used to render resumes.
//
// A skin is a CSS stylesheet and an HTML document template sharing one
// name. Both are Go templates executed by the templates package with the
// resolved style values. Skins are looked up as
//
//	styles/{name}.css
//	templates/{name}.html
//
// either in the files compiled into the binary (EmbeddedLoader) or in a
// user directory (FilesystemLoader). AssetResolver stacks the two so a user
// directory can override one skin file and inherit the rest.
//
// Names may not contain separators or dots, and files reached through a
// symlink must still resolve inside the user directory.
package assets
