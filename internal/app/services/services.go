package services

// Services defined in this package:
// - CourseService: creates and lists courses, one storage session per call
