// Package utils provides common utility functions for the scaffolding wizard.
// It includes helper functions for type conversion of loosely typed values
// coming from database catalogs and the metadata service.
package utils
