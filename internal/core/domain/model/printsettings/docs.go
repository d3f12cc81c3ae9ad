// Package printsettings holds the shop-wide print routing configuration:
// for every document type whether it prints, where it goes, on which
// printer and tray, and how many copies.
package printsettings
