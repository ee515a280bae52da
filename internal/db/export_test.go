package db

var Translate = translate
