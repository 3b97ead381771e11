// Package drive wraps the Google Drive API operations the server needs:
// listing spreadsheets and placing newly created spreadsheets into the
// configured working folder.
package drive
